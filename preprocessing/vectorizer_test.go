package preprocessing_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/preprocessing"
)

func TestCountVectorizer_Fit(t *testing.T) {
	docs := []string{
		"Super Mario Bros",
		"Mario Kart",
		"Wii Sports",
	}

	v := preprocessing.NewCountVectorizer()
	if err := v.Fit(docs); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !v.IsFitted() {
		t.Error("vectorizer should be fitted after Fit()")
	}

	// Lower-cased, sorted vocabulary.
	expected := []string{"bros", "kart", "mario", "sports", "super", "wii"}
	if len(v.Vocabulary) != len(expected) {
		t.Fatalf("expected %d terms, got %d (%v)", len(expected), len(v.Vocabulary), v.Vocabulary)
	}
	for i, term := range expected {
		if v.Vocabulary[i] != term {
			t.Errorf("Vocabulary[%d]: expected %q, got %q", i, term, v.Vocabulary[i])
		}
	}
}

func TestCountVectorizer_SingleCharTokensDropped(t *testing.T) {
	v := preprocessing.NewCountVectorizer()
	if err := v.Fit([]string{"R 2 D Artemis"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if v.NumTerms() != 1 || v.Vocabulary[0] != "artemis" {
		t.Errorf("single-character tokens should be dropped, vocabulary = %v", v.Vocabulary)
	}
}

func TestCountVectorizer_Transform(t *testing.T) {
	v := preprocessing.NewCountVectorizer()
	if err := v.Fit([]string{"Pong", "Pac-Man"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Vocabulary: [man, pac, pong]
	result, err := v.Transform([]string{"Pong", "pong pong", "Zelda"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	expected := [][]float64{
		{0, 0, 1}, // "Pong"
		{0, 0, 2}, // repeated token counts twice
		{0, 0, 0}, // out-of-vocabulary title
	}

	r, c := result.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("expected 3x3 matrix, got %dx%d", r, c)
	}
	for i := range expected {
		for j := range expected[i] {
			if result.At(i, j) != expected[i][j] {
				t.Errorf("Result[%d][%d]: expected %f, got %f", i, j, expected[i][j], result.At(i, j))
			}
		}
	}
}

func TestCountVectorizer_EmptyDocument(t *testing.T) {
	v := preprocessing.NewCountVectorizer()
	if err := v.Fit([]string{"Tetris", "Doom"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for _, doc := range []string{"", "   "} {
		result, err := v.Transform([]string{doc})
		if err != nil {
			t.Fatalf("Transform(%q) failed: %v", doc, err)
		}
		_, c := result.Dims()
		for j := 0; j < c; j++ {
			if result.At(0, j) != 0 {
				t.Errorf("Transform(%q): expected all-zero row, column %d = %f", doc, j, result.At(0, j))
			}
		}
	}
}

func TestCountVectorizer_TransformIdempotent(t *testing.T) {
	v := preprocessing.NewCountVectorizer()
	if err := v.Fit([]string{"Gran Turismo", "Gran Turismo 2"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	first, err := v.Transform([]string{"Gran Turismo"})
	if err != nil {
		t.Fatalf("first Transform failed: %v", err)
	}
	second, err := v.Transform([]string{"Gran Turismo"})
	if err != nil {
		t.Fatalf("second Transform failed: %v", err)
	}

	if !mat.Equal(first, second) {
		t.Error("Transform must be idempotent on the same fitted state")
	}
}

func TestCountVectorizer_UnfittedError(t *testing.T) {
	v := preprocessing.NewCountVectorizer()
	if _, err := v.Transform([]string{"Pong"}); err == nil {
		t.Error("Transform before Fit should fail")
	}
}

func TestCountVectorizer_EmptyCorpusError(t *testing.T) {
	v := preprocessing.NewCountVectorizer()
	if err := v.Fit(nil); err == nil {
		t.Error("Fit on an empty corpus should fail")
	}
}
