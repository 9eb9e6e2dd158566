package weekplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Weekdays are the canonical day keys of a freshly created plan, in week order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ErrNoSuchMeal is returned when a meal is removed from a day or position that does not exist.
var ErrNoSuchMeal = errors.New("no such meal")

// MealPlan maps a day name to the ordered list of meals planned for it.
// Once loaded from storage the key set is whatever was stored; only New
// guarantees the seven weekdays.
type MealPlan map[string][]string

// New creates a plan with every weekday bound to an empty list.
func New() MealPlan {
	plan := make(MealPlan, len(Weekdays))
	for _, day := range Weekdays {
		plan[day] = []string{}
	}
	return plan
}

// Reset returns a copy of plan with the same days and no meals.
// The argument is left untouched; callers persist the result with a store's Save.
func Reset(plan MealPlan) MealPlan {
	cleared := make(MealPlan, len(plan))
	for day := range plan {
		cleared[day] = []string{}
	}
	return cleared
}

// Clone deep-copies a plan.
func Clone(plan MealPlan) MealPlan {
	if plan == nil {
		return nil
	}
	out := make(MealPlan, len(plan))
	for day, meals := range plan {
		out[day] = append([]string{}, meals...)
	}
	return out
}

// AddMeal returns a copy of plan with meal appended to day. A day that is not
// in the plan yet is created.
func AddMeal(plan MealPlan, day, meal string) MealPlan {
	out := Clone(plan)
	if out == nil {
		out = MealPlan{}
	}
	out[day] = append(out[day], meal)
	return out
}

// RemoveMeal returns a copy of plan without the meal at index on day.
func RemoveMeal(plan MealPlan, day string, index int) (MealPlan, error) {
	meals, ok := plan[day]
	if !ok || index < 0 || index >= len(meals) {
		return nil, fmt.Errorf("%w: %s #%d", ErrNoSuchMeal, day, index)
	}
	out := Clone(plan)
	out[day] = append(out[day][:index:index], out[day][index+1:]...)
	return out, nil
}

// Days returns the plan's keys: known weekdays in week order first, then any
// other keys sorted.
func Days(plan MealPlan) []string {
	days := make([]string, 0, len(plan))
	known := make(map[string]bool, len(Weekdays))
	for _, day := range Weekdays {
		known[day] = true
		if _, ok := plan[day]; ok {
			days = append(days, day)
		}
	}
	var extra []string
	for day := range plan {
		if !known[day] {
			extra = append(extra, day)
		}
	}
	sort.Strings(extra)
	return append(days, extra...)
}

// Equal reports whether two plans hold the same days and meals. A nil meal
// list equals an empty one.
func Equal(a, b MealPlan) bool {
	if len(a) != len(b) {
		return false
	}
	for day, meals := range a {
		other, ok := b[day]
		if !ok || len(meals) != len(other) {
			return false
		}
		for i := range meals {
			if meals[i] != other[i] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON writes the days in Days order so a saved week reads Monday to Sunday.
// A nil plan is written as an empty object. Meal names are not HTML-escaped.
func (p MealPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range Days(p) {
		if i > 0 {
			buf.WriteByte(',')
		}
		meals := p[day]
		if meals == nil {
			meals = []string{}
		}
		if err := encodeValue(&buf, day); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, meals); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte("\n")))
	return nil
}

// UnmarshalJSON accepts any object of string arrays; a null day decodes as no meals.
func (p *MealPlan) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	for day, meals := range raw {
		if meals == nil {
			raw[day] = []string{}
		}
	}
	*p = MealPlan(raw)
	return nil
}

// CanonicalDay matches day case-insensitively against the plan's keys and the
// weekday names, returning the stored spelling. Unknown days are returned as given.
func CanonicalDay(plan MealPlan, day string) string {
	if _, ok := plan[day]; ok {
		return day
	}
	for _, known := range Days(plan) {
		if strings.EqualFold(known, day) {
			return known
		}
	}
	for _, known := range Weekdays {
		if strings.EqualFold(known, day) {
			return known
		}
	}
	return day
}
