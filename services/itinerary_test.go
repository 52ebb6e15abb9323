package services

import "testing"

func TestBuildItineraryWraps(t *testing.T) {
	got := BuildItinerary([]string{"A", "B", "C"}, 2)

	if len(got) != 2 {
		t.Fatalf("got %d days, want 2", len(got))
	}
	if got[0].Day != 1 || got[0].Places != [2]string{"A", "B"} {
		t.Fatalf("day 1 = %+v", got[0])
	}
	if got[1].Day != 2 || got[1].Places != [2]string{"C", "A"} {
		t.Fatalf("day 2 = %+v", got[1])
	}
}

func TestBuildItinerarySinglePlace(t *testing.T) {
	got := BuildItinerary([]string{"Fort"}, 3)

	if len(got) != 3 {
		t.Fatalf("got %d days, want 3", len(got))
	}
	for _, d := range got {
		if d.Places != [2]string{"Fort", "Fort"} {
			t.Fatalf("day %d = %v", d.Day, d.Places)
		}
	}
}

func TestBuildItineraryEnoughPlaces(t *testing.T) {
	got := BuildItinerary([]string{"A", "B", "C", "D", "E", "F"}, 3)

	want := [][2]string{{"A", "B"}, {"C", "D"}, {"E", "F"}}
	for i := range want {
		if got[i].Places != want[i] {
			t.Fatalf("day %d = %v, want %v", i+1, got[i].Places, want[i])
		}
	}
}

func TestBuildItineraryNothingToSchedule(t *testing.T) {
	if got := BuildItinerary(nil, 3); got != nil {
		t.Fatalf("expected nil itinerary, got %v", got)
	}
	if got := BuildItinerary([]string{"A"}, 0); got != nil {
		t.Fatalf("expected nil itinerary for zero days, got %v", got)
	}
}
