package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestNewMongoRepositoryManager_BadURI(t *testing.T) {
	_, err := NewMongoRepositoryManager(context.Background(), "not-a-mongo-uri", "TodoApp", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db connect error")
}

func TestNewMongoRepositoryManager_ConnectError(t *testing.T) {
	orig := mongoConnect
	t.Cleanup(func() { mongoConnect = orig })

	boom := errors.New("boom")
	mongoConnect = func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "connect must run under a deadline")
		return nil, boom
	}

	_, err := NewMongoRepositoryManager(context.Background(), "mongodb://localhost:27017", "TodoApp", time.Second)
	assert.ErrorIs(t, err, boom)
}

func TestMongoRepositoryManager_RunMigrations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates users then todos indexes", func(mt *mtest.T) {
		m := newMongoRepositoryManager(mt.Client, "TodoApp")
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		require.NoError(t, m.RunMigrations(context.Background()))

		first := mt.GetStartedEvent()
		require.NotNil(t, first)
		assert.Equal(t, "users", first.Command.Lookup("createIndexes").StringValue())
		second := mt.GetStartedEvent()
		require.NotNil(t, second)
		assert.Equal(t, "todos", second.Command.Lookup("createIndexes").StringValue())
	})

	mt.Run("stops on first failure", func(mt *mtest.T) {
		m := newMongoRepositoryManager(mt.Client, "TodoApp")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom", Name: "InternalError"}))

		err := m.RunMigrations(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users indexes")
	})

	mt.Run("vends repositories", func(mt *mtest.T) {
		m := newMongoRepositoryManager(mt.Client, "TodoApp")
		assert.NotNil(t, m.Users())
		assert.NotNil(t, m.Todos())
	})
}

func TestMongoRepositoryManager_CloseWithoutClient(t *testing.T) {
	m := &MongoRepositoryManager{}
	assert.NoError(t, m.Close(context.Background()))
}
