package cache

import (
	"context"
	"encoding/json"
	"time"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"

	"github.com/gocql/gocql"
	"golang.org/x/sync/singleflight"
)

const (
	ProductCacheTTL = 10 * time.Minute
	BrandCacheTTL   = 30 * time.Minute
)

// singleflight évite que plusieurs requêtes simultanées sur le même produit
// déclenchent chacune une lecture ScyllaDB quand le cache est froid.
var productGroup singleflight.Group

// GetProductFromCache récupère un produit depuis Redis, sinon ScyllaDB,
// et remplit le cache au passage.
func GetProductFromCache(ctx context.Context, productID gocql.UUID) (*models.Product, error) {
	key := "product:" + productID.String()

	// 1. Essayer le cache Redis
	if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
		var p models.Product
		if json.Unmarshal([]byte(data), &p) == nil {
			return &p, nil
		}
	}

	// 2. Récupérer de ScyllaDB (une seule lecture pour N appels concurrents)
	v, err, _ := productGroup.Do(key, func() (interface{}, error) {
		var p models.Product
		q := database.GetPreparedGetProductByID()
		if q == nil {
			session, err := database.GetCatalogSession()
			if err != nil {
				return nil, err
			}
			q = session.Query(`SELECT product_id, name, description, brand, category, price, original_price, stock_count, image_urls, featured, trending, new_arrival, compatibility, created_at, updated_at
				FROM products WHERE product_id = ?`)
		}

		err := q.Bind(productID).WithContext(ctx).Scan(
			&p.ID, &p.Name, &p.Description, &p.Brand, &p.Category, &p.Price,
			&p.OriginalPrice, &p.StockCount, &p.ImageURLs, &p.Featured,
			&p.Trending, &p.NewArrival, &p.Compatibility, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}

		// 3. Mettre en cache
		if data, err := json.Marshal(p); err == nil {
			database.Redis.Set(ctx, key, data, ProductCacheTTL)
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Product), nil
}

// InvalidateProductCache invalide le cache d'un produit et la liste complète
func InvalidateProductCache(ctx context.Context, productID gocql.UUID) {
	database.Redis.Del(ctx, "product:"+productID.String())
	database.Redis.Del(ctx, "products:all")
}

// InvalidateBrandCache invalide la liste des marques
func InvalidateBrandCache(ctx context.Context) {
	database.Redis.Del(ctx, "brands:all")
}
