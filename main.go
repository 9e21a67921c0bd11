package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	adapterx "github.com/krittin-w/frontdesk/agent/adapter"
	bookingx "github.com/krittin-w/frontdesk/agent/agents/booking"
	receptionx "github.com/krittin-w/frontdesk/agent/agents/reception"
	recommendx "github.com/krittin-w/frontdesk/agent/agents/recommend"
	contractx "github.com/krittin-w/frontdesk/agent/contract"
	promptx "github.com/krittin-w/frontdesk/agent/prompt"
	rosterx "github.com/krittin-w/frontdesk/agent/roster"
	sessionx "github.com/krittin-w/frontdesk/agent/session"
	configx "github.com/krittin-w/frontdesk/pkg/config"
	_ "github.com/krittin-w/frontdesk/pkg/logger/autoload"
	openrouterx "github.com/krittin-w/frontdesk/pkg/openrouter"
	serverx "github.com/krittin-w/frontdesk/server"
)

const supportedContentTypes = "text/markdown"

type AppConfig struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" split_words:"true" default:":8080"`
	DataDir    string `envconfig:"DATA_DIR" split_words:"true" default:"data"`
	RosterPath string `envconfig:"ROSTER_PATH" split_words:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	roster, err := rosterx.Load(appCfg.RosterPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load doctor roster")
	}
	log.Info().Int("doctors", len(roster.Doctors())).Msg("roster loaded")

	sessionCfg := configx.MustNew[sessionx.Config]("SESSION")
	if sessionCfg.FilePath == "" {
		sessionCfg.FilePath = filepath.Join(appCfg.DataDir, "session_store.json")
	}
	if sessionCfg.SQLitePath == "" {
		sessionCfg.SQLitePath = filepath.Join(appCfg.DataDir, "sessions.db")
	}
	sessions, err := sessionx.NewStore(*sessionCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init session store")
	}

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	openRouterClient, err := openrouterx.NewClient(*openRouterCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init openrouter client")
	}

	recommender, err := recommendx.New(
		roster,
		sessions,
		recommendx.NewCandidateStore(filepath.Join(appCfg.DataDir, "candidates.json")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init recommendation agent")
	}

	booker, err := bookingx.New(
		roster,
		sessions,
		bookingx.NewAppointmentBook(filepath.Join(appCfg.DataDir, "appointment_db.json")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init booking agent")
	}

	prompts := promptx.LoadPromptSet()
	receptionist, err := receptionx.New(
		openRouterClient,
		prompts.Receptionist,
		receptionx.NewTranscriptStore(filepath.Join(appCfg.DataDir, "transcripts.json")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init reception agent")
	}

	recommendAdapter, err := adapterx.New("recommend", recommendCard(), recommender)
	if err != nil {
		log.Fatal().Err(err).Msg("init recommend adapter")
	}
	bookingAdapter, err := adapterx.New("booking", bookingCard(), booker)
	if err != nil {
		log.Fatal().Err(err).Msg("init booking adapter")
	}
	receptionAdapter, err := adapterx.New("reception", receptionCard(), receptionist)
	if err != nil {
		log.Fatal().Err(err).Msg("init reception adapter")
	}

	srv := &http.Server{
		Addr:              appCfg.ListenAddr,
		Handler:           serverx.New(recommendAdapter, bookingAdapter, receptionAdapter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", appCfg.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func recommendCard() contractx.AgentCard {
	return contractx.AgentCard{
		Name:               "Doctor Recommendation Agent",
		Description:        "Matches symptoms to a specialty and recommends available doctors.",
		Version:            "1.0.0",
		DefaultInputModes:  []string{supportedContentTypes, "text/plain"},
		DefaultOutputModes: []string{supportedContentTypes, "text/plain"},
		Skills: []contractx.Skill{{
			ID:          "doctor_recommendation",
			Name:        "Doctor Recommendation",
			Description: "Suggests a doctor based on described symptoms and preferred day.",
			Tags:        []string{"healthcare", "recommendation"},
			Examples: []string{
				"I have chest pain",
				"My skin is itchy, can I see someone on Thursday?",
			},
		}},
	}
}

func bookingCard() contractx.AgentCard {
	return contractx.AgentCard{
		Name:               "Appointment Booking Agent",
		Description:        "Books appointments with hospital doctors by id, date or weekday.",
		Version:            "1.0.0",
		DefaultInputModes:  []string{supportedContentTypes, "text/plain"},
		DefaultOutputModes: []string{supportedContentTypes, "text/plain"},
		Skills: []contractx.Skill{{
			ID:          "appointment_booking",
			Name:        "Appointment Booking",
			Description: "Creates an appointment record for a doctor and date.",
			Tags:        []string{"healthcare", "booking"},
			Examples: []string{
				"Book doc001 on 2025-07-07",
				"Book me in with my doctor on friday",
			},
		}},
	}
}

func receptionCard() contractx.AgentCard {
	return contractx.AgentCard{
		Name:               "HospitalCounterAgent",
		Description:        "A hospital front desk assistant that helps patients with directions, appointments, and general inquiries.",
		Version:            "1.0.0",
		DefaultInputModes:  []string{supportedContentTypes, "text/plain"},
		DefaultOutputModes: []string{supportedContentTypes, "text/plain"},
		Skills: []contractx.Skill{{
			ID:          "hospital_desk_help",
			Name:        "Hospital Counter Help",
			Description: "Assists patients at a hospital counter with polite conversation and helpful info.",
			Tags:        []string{"healthcare", "reception", "assistant"},
			Examples: []string{
				"Where is the cardiology department?",
				"Is Dr. Mehta available today?",
				"How can I book an appointment?",
			},
		}},
	}
}
