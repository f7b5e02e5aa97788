package promotionValidator

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jubetech/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promotionTestApp(captured **Normalized) *fiber.App {
	app := fiber.New()
	app.Post("/promotion", PromotionBody(), func(c *fiber.Ctx) error {
		*captured = c.Locals("validatedPromotion").(*Normalized)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/promotion", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

const validPromotion = `{
	"name": "Launch week",
	"code": "LAUNCH10",
	"discount": 100,
	"min_purchase_amount": 500,
	"max_discount": 200,
	"quantity": 50,
	"start_date": "2026-09-01",
	"end_date": "2026-09-30",
	"times": [{"start_time": "09:00", "end_time": "17:30"}]
}`

func TestPromotionBodyDefaults(t *testing.T) {
	var captured *Normalized
	app := promotionTestApp(&captured)

	status := postJSON(t, app, validPromotion)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, captured)

	// Omitted enums coerce to their storage defaults.
	assert.Equal(t, models.PromotionForAll, captured.ForCourse)
	assert.Equal(t, models.DiscountTypeAmount, captured.Type)
	assert.Equal(t, models.ConditionOnce, captured.ConditionType)
	assert.False(t, captured.Status)

	require.Len(t, captured.Times, 1)
	assert.Equal(t, "09:00", FormatClockTime(captured.Times[0].StartTime))
	assert.Equal(t, "17:30", FormatClockTime(captured.Times[0].EndTime))
}

func TestPromotionBodySpecificRequiresCourses(t *testing.T) {
	var captured *Normalized
	app := promotionTestApp(&captured)

	body := strings.Replace(validPromotion, `"name": "Launch week",`,
		`"name": "Launch week", "for_course": "specific",`, 1)
	status := postJSON(t, app, body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Nil(t, captured)
}

func TestPromotionBodySpecificWithCourses(t *testing.T) {
	var captured *Normalized
	app := promotionTestApp(&captured)

	body := strings.Replace(validPromotion, `"name": "Launch week",`,
		`"name": "Launch week", "for_course": "specific", "courses": ["64a000000000000000000001"],`, 1)
	status := postJSON(t, app, body)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, captured)
	assert.Equal(t, models.PromotionForSpecific, captured.ForCourse)
	assert.Len(t, captured.Courses, 1)
}

func TestPromotionBodyRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		noError bool
	}{
		{"invalid course id", func(s string) string {
			return strings.Replace(s, `"code": "LAUNCH10",`, `"code": "LAUNCH10", "courses": ["nope"],`, 1)
		}, false},
		{"discount over cap", func(s string) string {
			return strings.Replace(s, `"discount": 100`, `"discount": 2001`, 1)
		}, false},
		{"missing quantity", func(s string) string {
			return strings.Replace(s, `"quantity": 50,`, "", 1)
		}, false},
		{"code too long", func(s string) string {
			return strings.Replace(s, `"LAUNCH10"`, `"THISCODEISWAYTOOLONG"`, 1)
		}, false},
		{"bad clock time", func(s string) string {
			return strings.Replace(s, `"09:00"`, `"9 am"`, 1)
		}, false},
		{"bad start date", func(s string) string {
			return strings.Replace(s, `"2026-09-01"`, `"September 1st"`, 1)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *Normalized
			app := promotionTestApp(&captured)
			status := postJSON(t, app, tt.mutate(validPromotion))
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Nil(t, captured)
		})
	}
}

func TestParseClockTimeRoundTrip(t *testing.T) {
	parsed, err := ParseClockTime("23:45")
	require.NoError(t, err)
	assert.Equal(t, "23:45", FormatClockTime(parsed))

	now := time.Now().UTC()
	assert.Equal(t, now.Year(), parsed.Year())
	assert.Equal(t, now.Month(), parsed.Month())
	assert.Equal(t, now.Day(), parsed.Day())
}

func TestParseClockTimeInvalid(t *testing.T) {
	for _, in := range []string{"25:00", "12:60", "noon", ""} {
		_, err := ParseClockTime(in)
		assert.Error(t, err, in)
	}
}

func TestFormatClockTimeZero(t *testing.T) {
	assert.Equal(t, "", FormatClockTime(time.Time{}))
}
