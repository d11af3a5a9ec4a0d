package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
	Tutor    TutorConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	Groq         string
	IngestTopic  string // Document ingestion topic
}

type AIConfig struct {
	EmbeddingProvider  string // "gemini", "jina" or "ollama"
	EmbeddingDimension int
	OllamaBaseURL      string
	OllamaModel        string
	LLMProvider        string // "ollama" or "groq"
	LLMModel           string // e.g. "llama3", "qwen2.5"
	RerankEnabled      bool
}

// RagConfig tunes the retrieval pipeline and the routing confidence gate.
// Similarity thresholds are per call site: the qa/summarization pipeline
// casts a wide net, the conversational corpus probe demands a strong match
// before preferring documents over plain chat.
type RagConfig struct {
	ConfidenceThreshold     float64 // below this, routing degrades to the safe default
	QASimilarityThreshold   float64 // relevance floor for the qa/summarization pipeline
	ChatSimilarityThreshold float64 // relevance floor for the content agent's corpus probe
	TopK                    int     // candidates fetched from the vector store
	TopN                    int     // passages kept after the relevance gate
	MaxContextDocs          int     // distinct documents assembled into context
	MaxContextChars         int     // per-passage truncation limit
}

type TutorConfig struct {
	DefaultStyle      string
	DefaultDifficulty string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			Groq:         getEnv("GROQ_API_KEY", ""),
			IngestTopic:  getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "llama3"),
			RerankEnabled:      getEnvAsBool("RERANK_ENABLED", false),
		},
		Rag: RagConfig{
			ConfidenceThreshold:     getEnvAsFloat("ROUTER_CONFIDENCE_THRESHOLD", 0.6),
			QASimilarityThreshold:   getEnvAsFloat("RAG_QA_SIMILARITY_THRESHOLD", 0.3),
			ChatSimilarityThreshold: getEnvAsFloat("RAG_CHAT_SIMILARITY_THRESHOLD", 0.7),
			TopK:                    getEnvAsInt("RAG_TOP_K", 10),
			TopN:                    getEnvAsInt("RAG_TOP_N", 5),
			MaxContextDocs:          getEnvAsInt("RAG_MAX_CONTEXT_DOCS", 5),
			MaxContextChars:         getEnvAsInt("RAG_MAX_CONTEXT_CHARS", 5000),
		},
		Tutor: TutorConfig{
			DefaultStyle:      getEnv("TUTOR_DEFAULT_STYLE", "detailed"),
			DefaultDifficulty: getEnv("TUTOR_DEFAULT_DIFFICULTY", "medium"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
