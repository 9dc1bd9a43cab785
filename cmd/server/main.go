package main

import (
	"context"
	"log"
	"os"

	"fruitbasket_back_end/internal/auth"
	"fruitbasket_back_end/internal/cart"
	"fruitbasket_back_end/internal/catalog"
	"fruitbasket_back_end/internal/config"
	"fruitbasket_back_end/internal/database"
	"fruitbasket_back_end/internal/handlers"
	"fruitbasket_back_end/internal/routes"
	"fruitbasket_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	ctx := context.Background()

	db, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("❌ Échec initialisation bases de données: %v", err)
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("❌ Échec création des index: %v", err)
	}

	// Câblage des services — tout est injecté, pas de singleton.
	accounts := auth.NewMongoAccountStore(db)
	authSvc := auth.NewService(accounts)
	sessions := auth.NewSessionManager([]byte(secret), accounts)

	var indexer *catalog.Indexer
	if db.Elastic != nil {
		indexer = catalog.NewIndexer(db.Elastic)
	}
	catalogSvc := catalog.NewService(
		catalog.NewMongoItemStore(db),
		catalog.NewRedisCache(db.Redis),
		indexer,
	)
	cartSvc := cart.NewService(cart.NewMongoCartStore(db), catalogSvc)

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "fruitbasket-images"
	}
	uploads := services.NewUploader(db.MinIO, bucket)

	h := handlers.New(authSvc, sessions, catalogSvc, cartSvc, uploads)

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.tmpl")
	routes.RegisterRoutes(r, h, sessions)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Println("🚀 Serveur FruitBasket lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur serveur:", err)
	}
}
