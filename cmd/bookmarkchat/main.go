package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bookmarkchat/internal/agent"
	"bookmarkchat/internal/chunker"
	"bookmarkchat/internal/config"
	"bookmarkchat/internal/domain"
	"bookmarkchat/internal/embedding/gemini"
	"bookmarkchat/internal/embedding/tfidf"
	"bookmarkchat/internal/ingest"
	"bookmarkchat/internal/knowledge"
	"bookmarkchat/internal/llm"
	"bookmarkchat/internal/ontology"
	"bookmarkchat/internal/summarizer"
	"bookmarkchat/internal/tui"
	"bookmarkchat/internal/vectorindex/memory"
	"bookmarkchat/internal/vectorindex/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var bookmarksPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/bookmarkchat/config.yaml if not provided)")
	flag.StringVar(&bookmarksPath, "bookmarks", "", "Path to bookmarks.json (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if bookmarksPath != "" {
		cfg.Ingest.BookmarksPath = bookmarksPath
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	records, err := ingest.LoadFile(cfg.Ingest.BookmarksPath, logger)
	if err != nil {
		logger.Fatal("ingest failed", zap.Error(err))
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "gemini":
		gcfg := gemini.Config{}
		if cfg.Embedder.Gemini != nil {
			gcfg = gemini.Config{
				APIKeyEnv: cfg.Embedder.Gemini.APIKeyEnv,
				Model:     cfg.Embedder.Gemini.Model,
				Timeout:   time.Duration(cfg.Embedder.Gemini.TimeoutSecs) * time.Second,
			}
		}
		client, err := gemini.NewClient(gcfg)
		if err != nil {
			logger.Fatal("gemini embedder init failed", zap.Error(err))
		}
		emb = client
	default:
		logger.Fatal("unknown embedder", zap.String("type", cfg.Embedder.Type))
	}

	var idx domain.VectorIndex
	switch cfg.VectorIndex.Type {
	case "memory", "":
		idx = memory.NewIndex()
	case "qdrant":
		if cfg.VectorIndex.Qdrant == nil {
			logger.Fatal("qdrant config missing")
		}
		idx = qdrant.NewIndex(qdrant.Config{
			URL:        cfg.VectorIndex.Qdrant.URL,
			APIKey:     cfg.VectorIndex.Qdrant.APIKey,
			Collection: cfg.VectorIndex.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorIndex.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatal("unknown vector index", zap.String("type", cfg.VectorIndex.Type))
	}

	ch := chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	kb := knowledge.NewBase(ch, emb, idx, logger)
	if err := kb.Build(records); err != nil {
		logger.Fatal("knowledge base build failed", zap.Error(err))
	}

	gen, err := llm.NewGemini(llm.Config{
		APIKeyEnv: cfg.LLM.APIKeyEnv,
		Model:     cfg.LLM.Model,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("generator init failed", zap.Error(err))
	}

	sum := summarizer.NewFrequencySummarizer()
	overview, err := sum.SummarizeRecords(records, 2)
	if err != nil {
		overview = ""
	}

	eng := agent.New(records, ontology.Default(), kb, gen, agent.Options{
		WorkingSetSize: cfg.Agent.WorkingSetSize,
		DisplayLimit:   cfg.Agent.DisplayLimit,
		SentimentLimit: cfg.Agent.SentimentLimit,
		RetrievalTopK:  cfg.Agent.RetrievalTopK,
		SummaryTopK:    cfg.Agent.SummaryTopK,
	}, logger)

	m := tui.New(eng, overview)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.Fatal("tui exited", zap.Error(err))
	}
}
