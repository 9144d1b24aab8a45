// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/config"
	"github.com/carelink/carelink-server/internal/domain"
	"github.com/carelink/carelink-server/internal/handlers"
	"github.com/carelink/carelink-server/internal/middleware"
	accountrepo "github.com/carelink/carelink-server/internal/repository/account"
	chatmessagerepo "github.com/carelink/carelink-server/internal/repository/chatmessage"
	doctorrepo "github.com/carelink/carelink-server/internal/repository/doctor"
	medicationrepo "github.com/carelink/carelink-server/internal/repository/medication"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	questionrepo "github.com/carelink/carelink-server/internal/repository/question"
	reportrepo "github.com/carelink/carelink-server/internal/repository/report"
	visitrepo "github.com/carelink/carelink-server/internal/repository/visit"
	"github.com/carelink/carelink-server/internal/services"
	"github.com/carelink/carelink-server/internal/services/ai"
	"github.com/carelink/carelink-server/internal/services/assistant"
	"github.com/carelink/carelink-server/internal/services/blob"
	"github.com/carelink/carelink-server/internal/services/compute"
	"github.com/carelink/carelink-server/internal/services/ocr"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("carelink-server")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Account{},
		&domain.Patient{},
		&domain.Doctor{},
		&domain.Visit{},
		&domain.Question{},
		&domain.Medication{},
		&domain.Report{},
		&domain.ChatMessage{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	accounts := accountrepo.NewGormAccountRepository(db)
	patients := patientrepo.NewGormPatientRepository(db)
	doctors := doctorrepo.NewGormDoctorRepository(db)
	visits := visitrepo.NewGormVisitRepository(db)
	questions := questionrepo.NewGormQuestionRepository(db)
	medications := medicationrepo.NewGormMedicationRepository(db)
	reports := reportrepo.NewGormReportRepository(db)
	chatMessages := chatmessagerepo.NewGormChatMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenAIAPIKey
	aiConfig.BaseURL = cfg.OpenAIBaseURL
	aiConfig.ChatModel = cfg.ChatModel
	aiConfig.VisionModel = cfg.VisionModel
	aiProvider := ai.NewOpenAIProvider(aiConfig)

	blobStore := blob.NewFSStore(cfg.BlobRoot, cfg.PublicBaseURL)
	extractor := ocr.NewTesseractExtractor()
	wolfram := compute.NewWolframClient(cfg.WolframAppID)

	assistantService, err := assistant.NewService(
		assistant.DefaultConfig(),
		patients,
		visits,
		reports,
		chatMessages,
		questions,
		aiProvider,
		logger,
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize assistant service: %v", err)
	}

	// --- Handlers ---
	jwtSecret := []byte(cfg.JWTSecretKey)
	authHandler := handlers.NewAuthHandler(accounts, patients, doctors, jwtSecret, logger)
	patientHandler := handlers.NewPatientHandler(patients, visits, questions, medications, reports, logger)
	doctorHandler := handlers.NewDoctorHandler(doctors, patients, visits, questions, logger)
	visitHandler := handlers.NewVisitHandler(visits, logger)
	questionHandler := handlers.NewQuestionHandler(questions, blobStore, aiProvider, assistantService, logger)
	reportHandler := handlers.NewReportHandler(reports, visits, blobStore, extractor, aiProvider, assistantService, logger)
	assistantHandler := handlers.NewAssistantHandler(assistantService, wolfram, logger)

	// --- Router Setup ---
	r := mux.NewRouter()
	identityMiddleware := middleware.NewIdentityMiddleware(jwtSecret)

	r.Use(middleware.CORS)
	r.Use(middleware.NewRecoverPanic(logger))
	r.Use(middleware.NewLoggingMiddleware(logger))

	// --- Public Routes ---
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.BlobRoot))))
	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}).Methods("GET")
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/api/patients", patientHandler.ListPatients).Methods("GET")
	r.HandleFunc("/search-patient", patientHandler.SearchPatient).Methods("POST")

	// --- Identity-Protected Routes ---
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(identityMiddleware)

	protected.HandleFunc("/doctor-profile", doctorHandler.DoctorProfile).Methods("GET")
	protected.HandleFunc("/pending-questions-for-doctor", doctorHandler.PendingQuestions).Methods("GET")
	protected.HandleFunc("/list-patients", doctorHandler.ListDoctorPatients).Methods("GET")
	protected.HandleFunc("/future-visits", doctorHandler.FutureVisits).Methods("GET")
	protected.HandleFunc("/today-visits", doctorHandler.TodayVisits).Methods("GET")
	protected.HandleFunc("/answer-question", doctorHandler.AnswerQuestion).Methods("POST")

	protected.HandleFunc("/patient-profile/{id}", patientHandler.PatientProfile).Methods("GET")
	protected.HandleFunc("/patient/{id}", patientHandler.GetPatient).Methods("GET")
	protected.HandleFunc("/patient-summary/{id}", patientHandler.PatientSummary).Methods("GET")
	protected.HandleFunc("/dashboard-data", patientHandler.DashboardData).Methods("GET")
	protected.HandleFunc("/add-medication", patientHandler.AddMedication).Methods("POST")

	protected.HandleFunc("/api/visits", visitHandler.CreateVisit).Methods("POST")
	protected.HandleFunc("/create-appointment", visitHandler.CreateAppointment).Methods("POST")
	protected.HandleFunc("/get-past-visits", visitHandler.PastVisits).Methods("GET")
	protected.HandleFunc("/upcoming-visits", visitHandler.UpcomingVisits).Methods("GET")
	protected.HandleFunc("/visit/{id:[0-9]+}", visitHandler.GetVisit).Methods("GET")
	protected.HandleFunc("/visit-detail/{id:[0-9]+}", visitHandler.GetVisit).Methods("GET")
	protected.HandleFunc("/update-visit/{id:[0-9]+}", visitHandler.UpdateVisit).Methods("PATCH")

	protected.HandleFunc("/get-questions", questionHandler.GetQuestions).Methods("GET")
	protected.HandleFunc("/ask-ai-old", questionHandler.AskAI).Methods("POST")
	protected.HandleFunc("/upload-question-audio", questionHandler.UploadQuestionAudio).Methods("POST")
	protected.HandleFunc("/upload-question-audio-for-chat", questionHandler.UploadQuestionAudioForChat).Methods("POST")

	protected.HandleFunc("/chat", assistantHandler.Chat).Methods("POST")
	protected.HandleFunc("/trend-recommendations", assistantHandler.TrendRecommendations).Methods("GET")
	protected.HandleFunc("/appointment-summary/{patientId}", assistantHandler.AppointmentSummary).Methods("GET")
	protected.HandleFunc("/health-joke", assistantHandler.HealthJoke).Methods("GET")
	protected.HandleFunc("/calculate-bmi", assistantHandler.CalculateBMI).Methods("POST")

	protected.HandleFunc("/upload-ocr-report", reportHandler.UploadOCRReport).Methods("POST")
	protected.HandleFunc("/add-report", reportHandler.AddReport).Methods("POST")
	protected.HandleFunc("/summarize-audio", reportHandler.SummarizeAudio).Methods("POST")
	protected.HandleFunc("/summarize-image", reportHandler.SummarizeImage).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
