package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoserver/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager vends MongoDB-backed repositories sharing a single
// client.
type MongoRepositoryManager struct {
	client *mongo.Client
	users  users.Repository
	todos  todos.Repository
}

// mongoConnect is a seam for testing mongo.Connect.
var mongoConnect = func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts)
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Todos() todos.Repository {
	return m.todos
}

// RunMigrations creates the indexes the repositories rely on. Creating an
// index that already exists is a no-op, so it is safe on every start.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := m.todos.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("todos indexes: %w", err)
	}
	return nil
}

// Close disconnects the client, waiting for in-flight operations until ctx
// is done.
func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

func newMongoRepositoryManager(client *mongo.Client, dbName string) *MongoRepositoryManager {
	db := client.Database(dbName)
	return &MongoRepositoryManager{
		client: client,
		users:  users.NewMongoRepository(db),
		todos:  todos.NewMongoRepository(db),
	}
}

// NewMongoRepositoryManager connects to uri and pings the primary before
// returning. Both steps share connectTimeout.
func NewMongoRepositoryManager(ctx context.Context, uri, dbName string, connectTimeout time.Duration) (*MongoRepositoryManager, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongoConnect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return newMongoRepositoryManager(client, dbName), nil
}
