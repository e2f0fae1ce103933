package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repoadd/internal/registry"
)

const (
	testCatalogFileNameConstant       = "repositories.yaml"
	testCatalogRepositoryPathConstant = "/repositories/example"
	testCatalogOtherPathConstant      = "/repositories/other"
	testCatalogRepositoriesKeyName    = "repositories"
)

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

func newCatalogStore(testInstance *testing.T, registrationInstant time.Time) *registry.Store {
	catalogPath := filepath.Join(testInstance.TempDir(), testCatalogFileNameConstant)
	store, creationError := registry.NewStore(registry.StoreDependencies{
		CatalogPath: catalogPath,
		Clock:       fixedClock{instant: registrationInstant},
	})
	require.NoError(testInstance, creationError)
	return store
}

func TestStoreRegisterRepositoryRequiresPath(testInstance *testing.T) {
	store := newCatalogStore(testInstance, time.Now())

	_, registrationError := store.RegisterRepository(context.Background(), "  ")
	require.ErrorIs(testInstance, registrationError, registry.ErrRepositoryPathRequired)
}

func TestStoreRegisterRepositoryPersistsEntry(testInstance *testing.T) {
	registrationInstant := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	store := newCatalogStore(testInstance, registrationInstant)

	repositoryHandle, registrationError := store.RegisterRepository(context.Background(), testCatalogRepositoryPathConstant)
	require.NoError(testInstance, registrationError)
	require.Equal(testInstance, testCatalogRepositoryPathConstant, repositoryHandle.Path)
	require.Equal(testInstance, registrationInstant, repositoryHandle.RegisteredAt)

	catalogBytes, readError := os.ReadFile(store.CatalogPath())
	require.NoError(testInstance, readError)

	decodedCatalog := map[string][]map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal(catalogBytes, &decodedCatalog))
	require.Len(testInstance, decodedCatalog[testCatalogRepositoriesKeyName], 1)
}

func TestStoreRegisterRepositoryIsIdempotent(testInstance *testing.T) {
	registrationInstant := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	store := newCatalogStore(testInstance, registrationInstant)

	firstHandle, firstError := store.RegisterRepository(context.Background(), testCatalogRepositoryPathConstant)
	require.NoError(testInstance, firstError)

	secondHandle, secondError := store.RegisterRepository(context.Background(), testCatalogRepositoryPathConstant)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, firstHandle, secondHandle)

	repositoryHandles, listError := store.ListRepositories(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, repositoryHandles, 1)
}

func TestStoreListRepositoriesReportsEveryEntry(testInstance *testing.T) {
	store := newCatalogStore(testInstance, time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC))

	_, firstError := store.RegisterRepository(context.Background(), testCatalogRepositoryPathConstant)
	require.NoError(testInstance, firstError)
	_, secondError := store.RegisterRepository(context.Background(), testCatalogOtherPathConstant)
	require.NoError(testInstance, secondError)

	repositoryHandles, listError := store.ListRepositories(context.Background())
	require.NoError(testInstance, listError)
	require.Len(testInstance, repositoryHandles, 2)
	require.Equal(testInstance, testCatalogRepositoryPathConstant, repositoryHandles[0].Path)
	require.Equal(testInstance, testCatalogOtherPathConstant, repositoryHandles[1].Path)
}

func TestStoreListRepositoriesWithoutCatalogIsEmpty(testInstance *testing.T) {
	store := newCatalogStore(testInstance, time.Now())

	repositoryHandles, listError := store.ListRepositories(context.Background())
	require.NoError(testInstance, listError)
	require.Empty(testInstance, repositoryHandles)
}

func TestNewStoreDefaultsCatalogPathUnderHome(testInstance *testing.T) {
	store, creationError := registry.NewStore(registry.StoreDependencies{})
	require.NoError(testInstance, creationError)

	homeDirectory, homeError := os.UserHomeDir()
	require.NoError(testInstance, homeError)
	require.Equal(testInstance, filepath.Join(homeDirectory, ".config/repoadd", testCatalogFileNameConstant), store.CatalogPath())
}
