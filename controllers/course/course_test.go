package courseController

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"jubetech/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want bson.D
	}{
		{"default", "", bson.D{{Key: "updatedAt", Value: -1}}},
		{"single ascending", "title", bson.D{{Key: "title", Value: 1}}},
		{"single descending", "-price", bson.D{{Key: "price", Value: -1}}},
		{"mixed fields", "title,-price", bson.D{{Key: "title", Value: 1}, {Key: "price", Value: -1}}},
		{"blank entries ignored", ",,-rating,", bson.D{{Key: "rating", Value: -1}}},
		{"only separators falls back", ",,", bson.D{{Key: "updatedAt", Value: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSort(tt.spec))
		})
	}
}

func TestToObjectIDs(t *testing.T) {
	ids := toObjectIDs([]string{"64a000000000000000000001", "nope", "64a000000000000000000002"})
	assert.Len(t, ids, 2)

	assert.Empty(t, toObjectIDs(nil))
}

// The section tree rides along on views that resolved it and disappears
// from the JSON of views that did not.
func TestCourseViewSectionsSerialization(t *testing.T) {
	lessonID := primitive.NewObjectID()
	sectionID := primitive.NewObjectID()

	view := CourseView{
		Course: models.Course{Title: "Intro to Go", Status: models.CourseStatusPublished},
		Groups: []GroupRef{},
		Sections: []SectionView{
			{
				ID:    sectionID,
				Title: "Getting Started",
				Lessons: []LessonRef{
					{ID: lessonID, Name: "Installing the toolchain", Type: "video", Duration: 240, IsFreePreview: true},
				},
			},
		},
	}

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	sections, ok := payload["sections"].([]interface{})
	require.True(t, ok)
	require.Len(t, sections, 1)
	section := sections[0].(map[string]interface{})
	assert.Equal(t, "Getting Started", section["title"])
	lessons := section["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	assert.Equal(t, "Installing the toolchain", lessons[0].(map[string]interface{})["name"])

	bare := CourseView{Course: models.Course{Title: "Intro to Go"}, Groups: []GroupRef{}}
	raw, err = json.Marshal(bare)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"sections"`)
}

// runFilter routes a GET through buildCourseFilter and returns the result.
func runFilter(t *testing.T, target string) bson.M {
	t.Helper()
	var filter bson.M
	app := fiber.New()
	app.Get("/courses", func(c *fiber.Ctx) error {
		filter = buildCourseFilter(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return filter
}

func TestBuildCourseFilter(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, runFilter(t, "/courses"))
	})

	t.Run("title regex", func(t *testing.T) {
		filter := runFilter(t, "/courses?title=go")
		assert.Equal(t, bson.M{"$regex": "go", "$options": "i"}, filter["title"])
	})

	t.Run("price range", func(t *testing.T) {
		filter := runFilter(t, "/courses?minPrice=200&maxPrice=900")
		assert.Equal(t, bson.M{"$gte": 200, "$lte": 900}, filter["price"])
	})

	t.Run("rating floor", func(t *testing.T) {
		filter := runFilter(t, "/courses?rating=4.5")
		assert.Equal(t, bson.M{"$gte": 4.5}, filter["rating"])
	})

	t.Run("certificate flag", func(t *testing.T) {
		filter := runFilter(t, "/courses?useCertificate=true")
		assert.Equal(t, true, filter["useCertificate"])
	})

	t.Run("group membership", func(t *testing.T) {
		filter := runFilter(t, "/courses?group_ids=64a000000000000000000001,64a000000000000000000002")
		require.Contains(t, filter, "group_ids")
	})

	t.Run("invalid group ids dropped", func(t *testing.T) {
		filter := runFilter(t, "/courses?group_ids=nope")
		assert.NotContains(t, filter, "group_ids")
	})
}

func TestParsePaging(t *testing.T) {
	app := fiber.New()
	var page, pageSize int
	var ok bool
	app.Get("/p", func(c *fiber.Ctx) error {
		page, pageSize, ok = parsePaging(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		target   string
		page     int
		pageSize int
		ok       bool
	}{
		{"/p", 1, 20, true},
		{"/p?page=3&pageSize=5", 3, 5, true},
		{"/p?page=0", 0, 0, false},
		{"/p?pageSize=abc", 0, 0, false},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.target, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, tc.ok, ok, tc.target)
		if tc.ok {
			assert.Equal(t, tc.page, page, tc.target)
			assert.Equal(t, tc.pageSize, pageSize, tc.target)
		}
	}
}
