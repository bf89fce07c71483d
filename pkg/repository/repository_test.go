package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/repository/firestore"
	"github.com/secmon-lab/airegister/pkg/repository/memory"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	// Each test gets its own collections so that name uniqueness does not leak between runs
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func runRepositoryTest(t *testing.T, name string, test func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Run(name+"/memory", func(t *testing.T) {
		test(t, newMemoryRepository)
	})
	t.Run(name+"/firestore", func(t *testing.T) {
		test(t, newFirestoreRepository)
	})
}
