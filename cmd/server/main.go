package main

import (
	"flag"
	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/mux"
	"holdem-server/pkg/room"
	"holdem-server/pkg/table"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Fatal("could not load .env")
	}

	setupLogger()

	// fail fast
	cfg := config.Instance()
	keys, err := jwt.LoadKeys(cfg.JWT.PublicKey, cfg.JWT.PrivateKey)
	if err != nil {
		logrus.WithError(err).Fatal("could not load keys")
	}

	pitBoss := room.NewPitBoss(room.NewMemoryLedger(cfg.StartingBankroll), logrus.StandardLogger())
	for _, t := range cfg.Tables {
		logger := logrus.WithFields(logrus.Fields{
			"table": t.ID,
			"name":  t.Name,
		})

		tbl, err := table.New(t.ID, t.Name, cfg.TableOptions(t), logger, nil)
		if err != nil {
			logrus.WithError(err).WithField("table", t.ID).Fatal("could not create table")
		}

		pitBoss.AddTable(tbl)
	}

	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, keys))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":   srv.Addr,
		"tables": len(cfg.Tables),
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
