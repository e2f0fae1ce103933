package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repoadd/internal/shared"
	"github.com/temirov/repoadd/internal/validation"
)

const (
	repositoryPathRequiredMessageConstant  = "repository path required"
	homeDirectoryUnavailableTemplate       = "resolving default catalog path failed: %w"
	catalogLockFailedTemplateConstant      = "acquiring catalog lock failed: %w"
	catalogLockNotAcquiredMessageConstant  = "catalog lock not acquired"
	catalogReadFailedTemplateConstant      = "reading repository catalog failed: %w"
	catalogDecodeFailedTemplateConstant    = "decoding repository catalog failed: %w"
	catalogEncodeFailedTemplateConstant    = "encoding repository catalog failed: %w"
	catalogWriteFailedTemplateConstant     = "writing repository catalog failed: %w"
	catalogDirectoryFailedTemplateConstant = "creating catalog directory failed: %w"
	defaultCatalogDirectoryConstant        = ".config/repoadd"
	defaultCatalogFileNameConstant         = "repositories.yaml"
	catalogLockSuffixConstant              = ".lock"
	catalogLockRetryInterval               = 50 * time.Millisecond
	catalogFilePermissionsConstant         = fs.FileMode(0o600)
	catalogDirectoryPermissionsConstant    = fs.FileMode(0o755)
	repositoryRegisteredLogMessageConstant = "repository registered"
	repositoryKnownLogMessageConstant      = "repository already registered"
	logFieldCatalogPathConstant            = "catalog_path"
	logFieldRepositoryPathConstant         = "repository_path"
)

// ErrRepositoryPathRequired indicates RegisterRepository was invoked with an empty path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrCatalogLockNotAcquired indicates another process holds the catalog lock.
var ErrCatalogLockNotAcquired = errors.New(catalogLockNotAcquiredMessageConstant)

type catalogEntry struct {
	Path         string    `yaml:"path"`
	RegisteredAt time.Time `yaml:"registered_at"`
}

type catalogDocument struct {
	Repositories []catalogEntry `yaml:"repositories"`
}

// StoreDependencies enumerates collaborators and settings for the catalog store.
type StoreDependencies struct {
	CatalogPath string
	FileSystem  shared.FileSystem
	Clock       shared.Clock
	Logger      *zap.Logger
}

// Store records registered repositories in a YAML catalog file.
type Store struct {
	catalogPath string
	fileSystem  shared.FileSystem
	clock       shared.Clock
	logger      *zap.Logger
}

// NewStore constructs a catalog Store. An empty catalog path selects the
// default location under the user's configuration directory.
func NewStore(dependencies StoreDependencies) (*Store, error) {
	resolvedCatalogPath := strings.TrimSpace(dependencies.CatalogPath)
	if len(resolvedCatalogPath) == 0 {
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return nil, fmt.Errorf(homeDirectoryUnavailableTemplate, homeError)
		}
		resolvedCatalogPath = filepath.Join(homeDirectory, defaultCatalogDirectoryConstant, defaultCatalogFileNameConstant)
	}

	resolvedFileSystem := dependencies.FileSystem
	if resolvedFileSystem == nil {
		resolvedFileSystem = shared.OSFileSystem{}
	}

	resolvedClock := dependencies.Clock
	if resolvedClock == nil {
		resolvedClock = shared.SystemClock{}
	}

	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Store{
		catalogPath: resolvedCatalogPath,
		fileSystem:  resolvedFileSystem,
		clock:       resolvedClock,
		logger:      resolvedLogger,
	}, nil
}

// CatalogPath reports the resolved catalog file location.
func (store *Store) CatalogPath() string {
	return store.catalogPath
}

// RegisterRepository appends the path to the catalog. Registration is
// idempotent: a path already present returns its existing handle unchanged.
func (store *Store) RegisterRepository(executionContext context.Context, repositoryPath string) (validation.RepositoryHandle, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return validation.RepositoryHandle{}, ErrRepositoryPathRequired
	}

	catalogDirectory := filepath.Dir(store.catalogPath)
	if directoryError := store.fileSystem.MkdirAll(catalogDirectory, catalogDirectoryPermissionsConstant); directoryError != nil {
		return validation.RepositoryHandle{}, fmt.Errorf(catalogDirectoryFailedTemplateConstant, directoryError)
	}

	catalogLock := flock.New(store.catalogPath + catalogLockSuffixConstant)
	lockAcquired, lockError := catalogLock.TryLockContext(executionContext, catalogLockRetryInterval)
	if lockError != nil {
		return validation.RepositoryHandle{}, fmt.Errorf(catalogLockFailedTemplateConstant, lockError)
	}
	if !lockAcquired {
		return validation.RepositoryHandle{}, ErrCatalogLockNotAcquired
	}
	defer func() {
		_ = catalogLock.Unlock()
	}()

	catalog, readError := store.readCatalog()
	if readError != nil {
		return validation.RepositoryHandle{}, readError
	}

	for _, existingEntry := range catalog.Repositories {
		if existingEntry.Path == trimmedRepositoryPath {
			store.logger.Debug(
				repositoryKnownLogMessageConstant,
				zap.String(logFieldRepositoryPathConstant, trimmedRepositoryPath),
				zap.String(logFieldCatalogPathConstant, store.catalogPath),
			)
			return validation.RepositoryHandle{Path: existingEntry.Path, RegisteredAt: existingEntry.RegisteredAt}, nil
		}
	}

	newEntry := catalogEntry{Path: trimmedRepositoryPath, RegisteredAt: store.clock.Now().UTC()}
	catalog.Repositories = append(catalog.Repositories, newEntry)

	if writeError := store.writeCatalog(catalog); writeError != nil {
		return validation.RepositoryHandle{}, writeError
	}

	store.logger.Info(
		repositoryRegisteredLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, trimmedRepositoryPath),
		zap.String(logFieldCatalogPathConstant, store.catalogPath),
	)

	return validation.RepositoryHandle{Path: newEntry.Path, RegisteredAt: newEntry.RegisteredAt}, nil
}

// ListRepositories reads the catalog and reports every registered handle.
func (store *Store) ListRepositories(executionContext context.Context) ([]validation.RepositoryHandle, error) {
	catalog, readError := store.readCatalog()
	if readError != nil {
		return nil, readError
	}

	repositoryHandles := make([]validation.RepositoryHandle, 0, len(catalog.Repositories))
	for _, existingEntry := range catalog.Repositories {
		repositoryHandles = append(repositoryHandles, validation.RepositoryHandle{
			Path:         existingEntry.Path,
			RegisteredAt: existingEntry.RegisteredAt,
		})
	}
	return repositoryHandles, nil
}

func (store *Store) readCatalog() (catalogDocument, error) {
	catalogBytes, readError := store.fileSystem.ReadFile(store.catalogPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return catalogDocument{}, nil
		}
		return catalogDocument{}, fmt.Errorf(catalogReadFailedTemplateConstant, readError)
	}

	catalog := catalogDocument{}
	if decodeError := yaml.Unmarshal(catalogBytes, &catalog); decodeError != nil {
		return catalogDocument{}, fmt.Errorf(catalogDecodeFailedTemplateConstant, decodeError)
	}
	return catalog, nil
}

func (store *Store) writeCatalog(catalog catalogDocument) error {
	encodedCatalog, encodeError := yaml.Marshal(catalog)
	if encodeError != nil {
		return fmt.Errorf(catalogEncodeFailedTemplateConstant, encodeError)
	}

	if writeError := store.fileSystem.WriteFile(store.catalogPath, encodedCatalog, catalogFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(catalogWriteFailedTemplateConstant, writeError)
	}
	return nil
}
