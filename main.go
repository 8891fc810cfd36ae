package main

import (
	"context"
	stdlog "log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/guru-assistant/guru/adapters/hasher"
	httpadapter "github.com/guru-assistant/guru/adapters/http"
	"github.com/guru-assistant/guru/adapters/llm"
	"github.com/guru-assistant/guru/adapters/memory"
	"github.com/guru-assistant/guru/adapters/message_broker"
	"github.com/guru-assistant/guru/adapters/sentiment"
	"github.com/guru-assistant/guru/adapters/websocket"
	"github.com/guru-assistant/guru/domain"
	"github.com/guru-assistant/guru/usecase"
	"github.com/guru-assistant/guru/utils/log"
	"github.com/guru-assistant/guru/voice"
)

func main() {
	gotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		stdlog.Fatal("FATAL: GEMINI_API_KEY not found in environment. Please set it.")
	}
	port := os.Getenv("PORT")
	if _, err := strconv.Atoi(port); err != nil {
		stdlog.Fatal("FATAL: Invalid or missing PORT in environment variables.")
	}

	history := domain.NewHistory(domain.DefaultHistoryLength)
	memoryStore := memory.NewStore()
	analyzer := sentiment.NewKeywordAnalyzer()
	broker := message_broker.NewChannelMessageBroker()
	defer broker.Close()

	// A failed capability construction is not fatal: the server starts
	// and chat requests answer 503 until the process is restarted.
	var svc *usecase.ChatService
	geminiLlm, err := llm.NewGeminiClient(context.Background(), apiKey, llm.DefaultModelName, llm.SystemInstruction)
	if err != nil {
		log.With(zap.Error(err)).Error("AI capability failed to initialize, chat will answer 503")
	} else {
		svc = usecase.NewChatService(
			geminiLlm,
			history,
			broker,
			analyzer,
			memoryStore,
			llm.SystemInstruction,
			llm.DefaultGenerationSettings,
			llm.DefaultSafetySettings,
		)
	}

	detector := voice.NewDetector(voice.DefaultWakePhrase)
	detector.Start()

	wsServer := websocket.NewServer(svc, broker, hasher.New(), detector)
	wsServer.RunWebsocketHub()

	handler := httpadapter.NewChatHandler(svc, history)

	e := echo.New()
	e.HideBanner = true

	renderer, err := httpadapter.NewRenderer("templates/*.html")
	if err != nil {
		stdlog.Fatalf("FATAL: parsing templates: %v", err)
	}
	e.Renderer = renderer

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit("1MB"))
	e.Use(httpadapter.RequestID)

	e.Static("/static", "static")
	e.GET("/", handler.Index)
	e.GET("/health", handler.Health)
	e.POST("/api/chat", handler.Chat)
	e.POST("/api/chat/reset", handler.Reset)
	e.GET("/ws", wsServer.Handler)

	stdlog.Fatal(e.Start(":" + port))
}
