package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/dbx"
	"github.com/ansapra/ansapra/internal/logging"
	"github.com/ansapra/ansapra/internal/server/filestore"
	"github.com/ansapra/ansapra/internal/server/interpret"
	"github.com/ansapra/ansapra/internal/server/models"
	"github.com/ansapra/ansapra/internal/server/related"
	"github.com/ansapra/ansapra/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// recentTitleLimit is how many history titles feed the prompt.
const recentTitleLimit = 3

// DefaultKeywords is used when an upload carries no keywords.
const DefaultKeywords = "natural science"

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// Upload is one submitted document.
type Upload struct {
	Filename string
	Data     io.Reader
	Keywords string
	Title    string
}

// SubmitResult is the outcome of one interpretation request.
type SubmitResult struct {
	Interpretation string
	RelatedPapers  []models.RelatedPaper
	Record         *models.ReadingRecord
}

type ReadingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	files       filestore.Store
	interpreter interpret.Interpreter
	searcher    related.Searcher
	logger      logging.Logger
	now         func() time.Time
}

func NewReadingService(db *sql.DB, m repomanager.RepositoryManager, files filestore.Store,
	interpreter interpret.Interpreter, searcher related.Searcher, logger logging.Logger) *ReadingService {
	return &ReadingService{
		db:          db,
		repomanager: m,
		files:       files,
		interpreter: interpreter,
		searcher:    searcher,
		logger:      logger.With("module", "reading_service"),
		now:         time.Now,
	}
}

// AllowedFile reports whether the original filename carries a supported
// extension.
func AllowedFile(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return allowedExtensions[ext]
}

// sanitizeFilename strips path components and replaces characters outside
// [A-Za-z0-9._-] so the name is safe as a storage key and a disk filename.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// storageName namespaces the stored file by user and upload time, which
// makes concurrent uploads collision-free by construction.
func (s *ReadingService) storageName(userID, original string) string {
	return fmt.Sprintf("%s_%s_%s", userID, s.now().UTC().Format("20060102150405"), sanitizeFilename(original))
}

// SubmitDocument runs the whole interpretation flow: validate and persist
// the file, build the personalized prompt, call the completion provider,
// fetch related reading best-effort, and prepend the new record to the
// user's history.
func (s *ReadingService) SubmitDocument(ctx context.Context, user *models.User, upload Upload) (*SubmitResult, error) {

	if upload.Data == nil || upload.Filename == "" || !AllowedFile(upload.Filename) {
		return nil, common.ErrInvalidInput
	}

	stored := s.storageName(user.ID, upload.Filename)
	if err := s.files.Save(ctx, stored, upload.Data); err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	keywords := upload.Keywords
	if keywords == "" {
		keywords = DefaultKeywords
	}
	title := upload.Title
	if title == "" {
		title = stored
	}

	titles, err := s.repomanager.Records(s.db).RecentTitles(ctx, user.ID, recentTitleLimit)
	if err != nil {
		return nil, fmt.Errorf("loading history titles: %w", err)
	}

	prompt := interpret.BuildPrompt(user.Settings.ReadingHabits, titles, user.Profile, stored)

	interpretation, err := s.interpreter.Interpret(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// best-effort: a failed search degrades to an empty related list
	papers, err := s.searcher.Search(ctx, keywords)
	if err != nil {
		s.logger.Warn(ctx, "related-work search failed", "error", err.Error())
		papers = []models.RelatedPaper{}
	}

	record := &models.ReadingRecord{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		Title:          title,
		Filename:       stored,
		UploadedAt:     s.now().UTC(),
		Interpretation: interpretation,
		Keywords:       keywords,
	}

	err = withTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		record, err = s.repomanager.Records(tx).Create(ctx, record)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("recording history: %w", err)
	}

	return &SubmitResult{
		Interpretation: interpretation,
		RelatedPapers:  papers,
		Record:         record,
	}, nil
}

// ListHistory returns the user's reading history, most recent first.
func (s *ReadingService) ListHistory(ctx context.Context, userID string) ([]*models.ReadingRecord, error) {
	records, err := s.repomanager.Records(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrInternal
	}
	if records == nil {
		records = []*models.ReadingRecord{}
	}
	return records, nil
}

// SaveAnnotation appends an annotation to one of the user's records.
func (s *ReadingService) SaveAnnotation(ctx context.Context, userID, recordID, annotation string) error {

	err := withTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Records(tx).AppendAnnotation(ctx, userID, recordID, annotation)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	return nil
}
