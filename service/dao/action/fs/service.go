package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"

	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/dao"
)

// Service is a filesystem-backed ProposedAction store: one JSON document per
// action id. It is the durable variant of the in-memory pending queue and
// works against any storage scheme afs understands (file, mem, s3, gs).
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Service[string, action.ProposedAction] = (*Service)(nil)

// Save persists an action as a JSON document.
func (s *Service) Save(ctx context.Context, anAction *action.ProposedAction) error {
	if anAction == nil {
		return dao.ErrNilEntity
	}
	if anAction.ID == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(anAction)
	if err != nil {
		return fmt.Errorf("failed to marshal action %v: %w", anAction.ID, err)
	}
	location := s.actionURL(anAction.ID)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save action to %v: %w", location, err)
	}
	return nil
}

// Load retrieves an action by id.
func (s *Service) Load(ctx context.Context, id string) (*action.ProposedAction, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	location := s.actionURL(id)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check action %v: %w", id, err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read action %v: %w", id, err)
	}
	var anAction action.ProposedAction
	if err = json.Unmarshal(data, &anAction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal action %v: %w", id, err)
	}
	return &anAction, nil
}

// Delete removes an action document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.actionURL(id)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to check action %v: %w", id, err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	if err = s.fs.Delete(ctx, location); err != nil {
		return fmt.Errorf("failed to delete action %v: %w", id, err)
	}
	return nil
}

// List returns all stored actions. Unreadable documents are skipped with a
// log entry so one corrupt file does not hide the rest.
func (s *Service) List(ctx context.Context) ([]*action.ProposedAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	var actions []*action.ProposedAction
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("failed to read action file %v: %v", object.URL(), err)
			continue
		}
		var anAction action.ProposedAction
		if err = json.Unmarshal(data, &anAction); err != nil {
			log.Printf("failed to unmarshal action file %v: %v", object.URL(), err)
			continue
		}
		actions = append(actions, &anAction)
	}
	return actions, nil
}

func (s *Service) actionURL(id string) string {
	return path.Join(s.baseURL, id+".json")
}

// New creates a filesystem action store rooted at baseURL.
func New(baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	fs := afs.New()
	ctx := context.Background()
	if exists, _ := fs.Exists(ctx, baseURL); !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base location: %w", err)
		}
	}
	return &Service{
		baseURL: url.Normalize(baseURL, file.Scheme),
		fs:      fs,
	}, nil
}
