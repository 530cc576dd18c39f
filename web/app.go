package web

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/khaledAlzeer/BlogWithUsers/internal/config"
	"github.com/khaledAlzeer/BlogWithUsers/internal/database"
)

type app struct {
	infoLog        *log.Logger
	errorLog       *log.Logger
	cfg            *config.Config
	HTMLDir        string
	StaticDir      string
	Database       *database.Database
	UserService    *database.UserService
	SessionService *database.SessionService
	PostService    *database.PostService
	CommentService *database.CommentService
	MessageService *database.MessageService
}

func RunApp() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		errorLog.Fatal("Failed to load config:", err)
	}

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		errorLog.Fatal("Failed to open SQLite DB:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		errorLog.Fatal("Failed to ping SQLite DB:", err)
	}

	infoLog.Println("SQLite DB connected:", cfg.Database.DSN)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour

	app := &app{
		infoLog:        infoLog,
		errorLog:       errorLog,
		cfg:            cfg,
		HTMLDir:        cfg.UI.HTMLDir,
		StaticDir:      cfg.UI.StaticDir,
		Database:       db,
		UserService:    database.NewUserService(db),
		SessionService: database.NewSessionService(db, sessionTTL),
		PostService:    database.NewPostService(db),
		CommentService: database.NewCommentService(db),
		MessageService: database.NewMessageService(db),
	}

	if err := app.SessionService.CleanupExpiredSessions(); err != nil {
		app.infoLog.Printf("Warning: failed to cleanup expired sessions: %v", err)
	}

	srv := &http.Server{
		Addr:     cfg.Server.Addr,
		ErrorLog: app.errorLog,
		Handler:  app.routes(),

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("Starting server on http://localhost%s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}
