package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worksheethub/models"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var PreferenceCollection *mongo.Collection

// Connected reports whether a preference store is available. The server
// runs fine without one; preference routes just answer 503.
func Connected() bool {
	return MongoDatabase != nil
}

// extractDBName parses the database name from the URI, defaulting to "worksheethub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "worksheethub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "worksheethub"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	PreferenceCollection = MongoDatabase.Collection("preferences")
	return nil
}

// SavePreference upserts a client's last selection and theme.
func SavePreference(ctx context.Context, pref models.Preference) error {
	filter := bson.M{"clientId": pref.ClientID}
	update := bson.M{"$set": pref}
	opts := options.Update().SetUpsert(true)
	_, err := PreferenceCollection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		log.Printf("Error saving preference: %v", err)
		return err
	}
	return nil
}

// GetPreference retrieves a client's stored selection.
func GetPreference(ctx context.Context, clientID string) (*models.Preference, error) {
	var pref models.Preference
	err := PreferenceCollection.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&pref)
	if err != nil {
		return nil, err
	}
	return &pref, nil
}
