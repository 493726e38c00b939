package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveScore(ScoreRecord{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, "blast", 700)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore("blast"); high != 700 {
		t.Errorf("HighScore() after reopen = %d, want 700", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreRecord{
		GameID:    "blast",
		RunID:     "run-1",
		Score:     1200,
		Lines:     9,
		BestCombo: 3,
	})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveScore() id = %d, want > 0", id)
	}
	mustSave(t, store, "blast", 300)
	mustSave(t, store, "blast", 2000)
	mustSave(t, store, "blast_mini", 50)

	scores, err := store.TopScores("blast", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{2000, 1200, 300}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	e := scores[1]
	if e.RunID != "run-1" || e.Lines != 9 || e.BestCombo != 3 || e.GameID != "blast" {
		t.Errorf("record fields not round-tripped: %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	mini, _ := store.TopScores("blast_mini", 10)
	if len(mini) != 1 {
		t.Errorf("Expected 1 blast_mini score, got %d", len(mini))
	}
}

func TestStoreSaveScoreRequiresGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(ScoreRecord{Score: 10}); err == nil {
		t.Error("SaveScore() with empty game id should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, _ := store.TopScores("test", 0)
	if len(all) != 5 {
		t.Errorf("default limit should return all 5, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blast")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, "blast", 100)
	mustSave(t, store, "blast", 300)
	mustSave(t, store, "blast", 200)

	if high, _ = store.HighScore("blast"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	// A live high score above every saved game wins.
	if _, err := store.UpdateHighScore("blast", 450); err != nil {
		t.Fatalf("UpdateHighScore() failed: %v", err)
	}
	if high, _ = store.HighScore("blast"); high != 450 {
		t.Errorf("Expected high score of 450, got %d", high)
	}
}

func TestStoreUpdateHighScoreIsMonotonic(t *testing.T) {
	store := openTestStore(t)

	steps := []struct {
		score   int
		changed bool
		want    int
	}{
		{100, true, 100},
		{50, false, 100},
		{100, false, 100},
		{250, true, 250},
		{0, false, 250},
	}

	for i, st := range steps {
		changed, err := store.UpdateHighScore("blast", st.score)
		if err != nil {
			t.Fatalf("step %d: UpdateHighScore() failed: %v", i, err)
		}
		if changed != st.changed {
			t.Errorf("step %d: UpdateHighScore(%d) changed = %v, want %v", i, st.score, changed, st.changed)
		}
		if high, _ := store.HighScore("blast"); high != st.want {
			t.Errorf("step %d: HighScore() = %d, want %d", i, high, st.want)
		}
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.UpdateHighScore("blast", score*10); err != nil {
				t.Errorf("UpdateHighScore() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if high, _ := store.HighScore("blast"); high != 200 {
		t.Errorf("HighScore() = %d, want 200", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "blast", 100)
	mustSave(t, store, "blast", 200)
	mustSave(t, store, "blast_big", 300)
	store.UpdateHighScore("blast", 999)

	if err := store.ClearScores("blast"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("blast", 10); len(scores) != 0 {
		t.Errorf("Expected 0 blast scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("blast"); high != 0 {
		t.Errorf("Expected high score reset, got %d", high)
	}
	if big, _ := store.TopScores("blast_big", 10); len(big) != 1 {
		t.Errorf("blast_big scores should not be affected by clearing blast")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blast")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore(ScoreRecord{GameID: "blast", Score: 100, Lines: 2, BestCombo: 1})
	store.SaveScore(ScoreRecord{GameID: "blast", Score: 300, Lines: 5, BestCombo: 4})

	stats, err := store.GetGameStats("blast")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalLines != 7 {
		t.Errorf("TotalLines = %d, want 7", stats.TotalLines)
	}
	if stats.BestCombo != 4 {
		t.Errorf("BestCombo = %d, want 4", stats.BestCombo)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["blast"].GamesCount != 2 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreRecordsSchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	for iter := 0; iter < 2; iter++ {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() failed: %v", err)
		}
		var version int
		if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
			t.Fatal(err)
		}
		if version != len(migrations) {
			t.Errorf("user_version = %d, want %d", version, len(migrations))
		}
		store.Close()
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/.blast/scores.db", filepath.Join(home, ".blast", "scores.db")},
		{"~", home},
		{"/tmp/scores.db", "/tmp/scores.db"},
		{"~other/scores.db", "~other/scores.db"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStorePathIsExpanded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if want := filepath.Join(home, "scores.db"); store.Path() != want {
		t.Errorf("Path() = %q, want %q", store.Path(), want)
	}
}
