package server

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDBDSNNotSet indicates no database DSN could be resolved from config or env.
var ErrDBDSNNotSet = errors.New("database DSN not set")

// Server wires configuration, the database handle and the HTTP surface.
// Handlers construct stores per request; grant reads always hit the database
// so a revocation takes effect on the next request.
type Server struct {
	Config *AppConfig
	db     *gorm.DB
}

func NewServer(cfg *AppConfig) *Server {
	if cfg == nil {
		cfg = GetConfig()
	}
	return &Server{Config: cfg}
}

// Initialize opens the database connection. Safe to call once at startup;
// tests call it and skip when no database is reachable.
func (s *Server) Initialize() error {
	dsn := s.Config.DBDSN()
	if dsn == "" {
		return ErrDBDSNNotSet
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// GetDB returns the shared gorm handle.
func (s *Server) GetDB() (*gorm.DB, error) {
	if s.db == nil {
		return nil, ErrDBDSNNotSet
	}
	return s.db, nil
}
