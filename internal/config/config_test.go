package config

import "testing"

func TestLoadRagDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Rag.ConfidenceThreshold != 0.6 {
		t.Errorf("ConfidenceThreshold = %v, want 0.6", cfg.Rag.ConfidenceThreshold)
	}
	if cfg.Rag.QASimilarityThreshold != 0.3 {
		t.Errorf("QASimilarityThreshold = %v, want 0.3", cfg.Rag.QASimilarityThreshold)
	}
	if cfg.Rag.ChatSimilarityThreshold != 0.7 {
		t.Errorf("ChatSimilarityThreshold = %v, want 0.7", cfg.Rag.ChatSimilarityThreshold)
	}
	if cfg.Rag.TopK != 10 || cfg.Rag.TopN != 5 {
		t.Errorf("TopK/TopN = %d/%d, want 10/5", cfg.Rag.TopK, cfg.Rag.TopN)
	}
	if cfg.Rag.MaxContextDocs != 5 || cfg.Rag.MaxContextChars != 5000 {
		t.Errorf("context budget = %d docs / %d chars", cfg.Rag.MaxContextDocs, cfg.Rag.MaxContextChars)
	}
}

func TestLoadRagThresholdsAreIndependent(t *testing.T) {
	t.Setenv("RAG_QA_SIMILARITY_THRESHOLD", "0.25")
	t.Setenv("RAG_CHAT_SIMILARITY_THRESHOLD", "0.8")

	cfg := Load()

	if cfg.Rag.QASimilarityThreshold != 0.25 {
		t.Errorf("QASimilarityThreshold = %v, want 0.25", cfg.Rag.QASimilarityThreshold)
	}
	if cfg.Rag.ChatSimilarityThreshold != 0.8 {
		t.Errorf("ChatSimilarityThreshold = %v, want 0.8", cfg.Rag.ChatSimilarityThreshold)
	}
}
