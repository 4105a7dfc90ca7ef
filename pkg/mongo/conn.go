package mongo

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spoilme-vintage/store-api/pkg/global"
)

var client *mongo.Client

func GetMongoClient() *mongo.Client {
	if client != nil {
		return client
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().ApplyURI(global.GetMongoURI()).SetServerAPIOptions(serverAPI)
	c, err := mongo.Connect(clientOptions)
	if err != nil {
		logrus.Fatalf("Failed to create MongoDB client: %v", err)
	}
	client = c
	return client
}

func GetDatabase() *mongo.Database {
	return GetMongoClient().Database(global.GetDatabaseName())
}

func GetCollection(collectionName string) *mongo.Collection {
	return GetDatabase().Collection(collectionName)
}

func InitMongoDB() {
	c := GetMongoClient()
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	// Ping the database to verify connection
	if err := c.Ping(ctx, nil); err != nil {
		logrus.Fatalf("Failed to ping MongoDB: %v", err)
	}

	logrus.Info("Connected to MongoDB successfully")
}
