package storage

import "testing"

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 5, 20} {
		if _, err := store.SaveScore("swim", "ana", score, 0); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "ana", 500, 0); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("swim", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 20 || scores[1].Score != 10 || scores[2].Score != 5 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].UserID != "ana" {
		t.Errorf("Expected user ana, got %q", scores[0].UserID)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("swim", "ana", (i+1)*10, 0)
	}

	scores, err := store.TopScores("swim", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScorePerUser(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("swim", "ana")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for no scores, got %d", high)
	}

	store.SaveScore("swim", "ana", 14, 1)
	store.SaveScore("swim", "ben", 30, 2)
	store.SaveScore("swim", "ana", 8, 0)

	tests := []struct {
		user     string
		expected int
	}{
		{"ana", 14},
		{"ben", 30},
		{"", 30},
		{"cleo", 0},
	}
	for _, tc := range tests {
		got, err := store.HighScore("swim", tc.user)
		if err != nil {
			t.Fatalf("HighScore(%q) failed: %v", tc.user, err)
		}
		if got != tc.expected {
			t.Errorf("HighScore(%q) = %d, expected %d", tc.user, got, tc.expected)
		}
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("swim", "ana", 10, 0)
	store.SaveScore("swim", "ana", 20, 1)
	store.SaveScore("swim", "ben", 60, 3)

	stats, err := store.GetGameStats("swim", "ana")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 20 || stats.AvgScore != 15 {
		t.Errorf("Unexpected stats for ana: %+v", stats)
	}

	all, err := store.GetGameStats("swim", "")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if all.GamesCount != 3 || all.HighScore != 60 {
		t.Errorf("Unexpected stats for all users: %+v", all)
	}

	empty, err := store.GetGameStats("swim", "cleo")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}
}
