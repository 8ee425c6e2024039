package detectors

import "testing"

func TestSplitName(t *testing.T) {
	fields := []Sibling{
		{Path: "first_name", Key: "first_name", Value: "Rahul"},
		{Path: "last_name", Key: "last_name", Value: " Verma "},
		{Path: "city", Key: "city", Value: "Pune"},
	}
	ms := ClassifySiblings(Default(), fields)
	if len(ms) != 2 {
		t.Fatalf("expected two split_name matches, got %+v", ms)
	}
	for _, m := range ms {
		if m.Def.Name != "split_name" {
			t.Fatalf("unexpected rule %s", m.Def.Name)
		}
	}
	if ms[1].Text != "Verma" || ms[1].Start != 1 || ms[1].End != 6 {
		t.Fatalf("unexpected trimmed span %+v", ms[1])
	}
}

func TestCityPIN(t *testing.T) {
	fields := []Sibling{
		{Path: "a.city", Key: "City", Value: "Mumbai"},
		{Path: "a.pin_code", Key: "pin_code", Value: "400001"},
	}
	ms := ClassifySiblings(Default(), fields)
	if len(ms) != 2 || ms[0].Def.Name != "city_pin" {
		t.Fatalf("expected city_pin matches, got %+v", ms)
	}

	fields[1].Value = "040001"
	if ms := ClassifySiblings(Default(), fields); len(ms) != 0 {
		t.Fatalf("invalid PIN accepted: %+v", ms)
	}
}

func TestSiblingsIncomplete(t *testing.T) {
	fields := []Sibling{{Path: "first_name", Key: "first_name", Value: "Rahul"}}
	if ms := ClassifySiblings(Default(), fields); len(ms) != 0 {
		t.Fatalf("lone first_name matched: %+v", ms)
	}
	full := []Sibling{
		{Path: "first_name", Key: "first_name", Value: "Rahul"},
		{Path: "last_name", Key: "last_name", Value: "Verma"},
	}
	if ms := ClassifySiblings(Default().WithoutComposites(), full); len(ms) != 0 {
		t.Fatalf("composites disabled but matched: %+v", ms)
	}
}
