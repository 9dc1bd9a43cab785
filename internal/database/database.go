package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Databases regroupe toutes les connexions externes. L'objet est construit
// une fois dans main puis injecté dans les services — pas de handle global.
type Databases struct {
	Client  *mongo.Client
	Mongo   *mongo.Database
	Sellers *mongo.Collection
	Buyers  *mongo.Collection
	Items   *mongo.Collection

	Redis   *redis.Client
	Elastic *elasticsearch.Client // nil si non configuré
	MinIO   *minio.Client         // nil si non configuré
}

// Connect établit toutes les connexions. MongoDB et Redis sont obligatoires,
// Elasticsearch et MinIO sont optionnels (les fonctionnalités associées se
// désactivent proprement quand ils sont absents).
func Connect(ctx context.Context) (*Databases, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db := &Databases{}

	// 1. MongoDB
	if err := db.connectMongo(ctx); err != nil {
		return nil, fmt.Errorf("échec connexion MongoDB: %w", err)
	}

	// 2. Redis
	if err := db.connectRedis(ctx); err != nil {
		return nil, fmt.Errorf("échec connexion Redis: %w", err)
	}

	// 3. Elasticsearch (optionnel)
	db.connectElastic()

	// 4. MinIO (optionnel)
	db.connectMinIO(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
	return db, nil
}

// =============================================
// MONGODB
// =============================================

func (db *Databases) connectMongo(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "FruitBasket"
	}

	db.Client = client
	db.Mongo = client.Database(name)
	db.Sellers = db.Mongo.Collection("sellers")
	db.Buyers = db.Mongo.Collection("buyers")
	db.Items = db.Mongo.Collection("items")

	log.Printf("✅ Connecté à MongoDB (base '%s')", name)
	return nil
}

// EnsureIndexes crée les index uniques sur username. C'est cet index — et non
// le pré-contrôle d'existence des handlers — qui garantit l'unicité face à
// deux inscriptions concurrentes du même nom.
func (db *Databases) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, coll := range []*mongo.Collection{db.Sellers, db.Buyers} {
		if _, err := coll.Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("création index unique sur %s: %w", coll.Name(), err)
		}
	}

	log.Println("✅ Index uniques sur username (sellers, buyers)")
	return nil
}

// Close ferme proprement les connexions qui le supportent.
func (db *Databases) Close(ctx context.Context) {
	if db.Client != nil {
		if err := db.Client.Disconnect(ctx); err != nil {
			log.Println("⚠️ Erreur fermeture MongoDB:", err)
		} else {
			log.Println("🔌 Connexion MongoDB fermée")
		}
	}
	if db.Redis != nil {
		_ = db.Redis.Close()
		log.Println("🔌 Connexion Redis fermée")
	}
}

// =============================================
// REDIS
// =============================================

func (db *Databases) connectRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	db.Redis = client
	log.Println("✅ Connecté à Redis")
	return nil
}

// =============================================
// ELASTICSEARCH
// =============================================

func (db *Databases) connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ Elasticsearch non configuré — recherche en repli MongoDB uniquement")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable:", err)
		return
	}
	defer res.Body.Close()

	db.Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

// =============================================
// MINIO
// =============================================

func (db *Databases) connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MinIO non configuré — articles sans image")
		return
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Println("⚠️ Erreur connexion MinIO:", err)
		return
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	if bucketName == "" {
		bucketName = "fruitbasket-images"
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Println("⚠️ Erreur vérification bucket MinIO:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Erreur création bucket MinIO:", err)
			return
		}
		log.Println("🪣 Bucket créé :", bucketName)
	} else {
		log.Println("🪣 Bucket MinIO déjà présent :", bucketName)
	}

	db.MinIO = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}
