// Package db manages the MongoDB connection and named collections.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Client wraps mongo.Client and exposes the application's collections.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection with a ping and
// returns a Client bound to the named database.
func New(ctx context.Context, uri, dbName string) (*Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Users returns the users collection.
func (c *Client) Users() *mongo.Collection {
	return c.db.Collection("users")
}

// Items returns the items collection.
func (c *Client) Items() *mongo.Collection {
	return c.db.Collection("items")
}

// Messages returns the messages collection.
func (c *Client) Messages() *mongo.Collection {
	return c.db.Collection("messages")
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes creates the indexes the repositories rely on.
func (c *Client) CreateIndexes(ctx context.Context) error {
	// Unique email on users backs the lookup-before-insert signup
	// policy with a hard constraint against races.
	usersIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.Users().Indexes().CreateOne(ctx, usersIndex); err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	// Items are always listed newest first.
	itemsIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}
	if _, err := c.Items().Indexes().CreateOne(ctx, itemsIndex); err != nil {
		return fmt.Errorf("failed to create items index: %w", err)
	}

	messageIndexes := []mongo.IndexModel{
		{
			// Inbox queries match either side of the pair and sort by time.
			Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "timestamp", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "timestamp", Value: 1}},
		},
	}
	if _, err := c.Messages().Indexes().CreateMany(ctx, messageIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}

	return nil
}
