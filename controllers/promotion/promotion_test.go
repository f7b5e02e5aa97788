package promotionController

import (
	"encoding/json"
	"testing"
	"time"

	"jubetech/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToViewResolvesCourses(t *testing.T) {
	goCourse := primitive.NewObjectID()
	rustCourse := primitive.NewObjectID()
	danglingCourse := primitive.NewObjectID()

	promotion := models.Promotion{
		Name:    "Launch week",
		Courses: []primitive.ObjectID{goCourse, danglingCourse, rustCourse},
	}
	titles := map[primitive.ObjectID]string{
		goCourse:   "Practical Go",
		rustCourse: "Systems Rust",
	}

	view := toView(promotion, titles)

	require.Len(t, view.Courses, 2)
	assert.Equal(t, goCourse, view.Courses[0].ID)
	assert.Equal(t, "Practical Go", view.Courses[0].Title)
	assert.Equal(t, "Systems Rust", view.Courses[1].Title)
}

func TestToViewEmptyCourses(t *testing.T) {
	view := toView(models.Promotion{Name: "Launch week"}, nil)
	assert.NotNil(t, view.Courses)
	assert.Empty(t, view.Courses)
}

func TestPromotionViewSerialization(t *testing.T) {
	courseID := primitive.NewObjectID()
	start, _ := time.Parse(time.RFC3339, "2026-09-01T09:00:00Z")
	end, _ := time.Parse(time.RFC3339, "2026-09-01T17:30:00Z")

	promotion := models.Promotion{
		Name:    "Launch week",
		Courses: []primitive.ObjectID{courseID},
		Times:   []models.TimeWindow{{StartTime: start, EndTime: end}},
	}
	view := toView(promotion, map[primitive.ObjectID]string{courseID: "Practical Go"})

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	// The resolved references shadow the embedded id list.
	courses, ok := payload["courses"].([]interface{})
	require.True(t, ok)
	require.Len(t, courses, 1)
	assert.Equal(t, "Practical Go", courses[0].(map[string]interface{})["title"])

	// Windows come back as the clock strings that were submitted.
	times, ok := payload["times"].([]interface{})
	require.True(t, ok)
	require.Len(t, times, 1)
	window := times[0].(map[string]interface{})
	assert.Equal(t, "09:00", window["start_time"])
	assert.Equal(t, "17:30", window["end_time"])
}
