package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"shop-tg-bot/internal/config"
	"shop-tg-bot/internal/constants"
	"shop-tg-bot/pkg/elasticpath"
)

// productRecord matches the product seed file format
type productRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Image       struct {
		URL string `json:"url"`
	} `json:"product_image"`
}

// shopRecord matches the shop seed file format
type shopRecord struct {
	Alias   string `json:"alias"`
	Address struct {
		Full string `json:"full"`
	} `json:"address"`
	Coordinates struct {
		Lon json.Number `json:"lon"`
		Lat json.Number `json:"lat"`
	} `json:"coordinates"`
}

func main() {
	productsFile := flag.String("products", "", "JSON file with products to upload")
	shopsFile := flag.String("shops", "", "JSON file with shops to upload")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: constants.TimestampFormat,
	})

	if *productsFile == "" && *shopsFile == "" {
		logger.Fatal("Nothing to do: pass -products and/or -shops")
	}

	cfg, err := config.LoadElasticpath()
	if err != nil {
		logger.Fatal("Failed to load configuration: ", err)
	}

	ctx := context.Background()
	client := elasticpath.NewClient(cfg, logger)

	if *productsFile != "" {
		if err := uploadProducts(ctx, client, *productsFile, logger); err != nil {
			logger.Fatal("Failed to upload products: ", err)
		}
	}
	if *shopsFile != "" {
		if err := uploadShops(ctx, client, *shopsFile, cfg.ShopsFlow, logger); err != nil {
			logger.Fatal("Failed to upload shops: ", err)
		}
	}
}

// uploadProducts creates every product from the seed file along with its
// main image.
func uploadProducts(ctx context.Context, client *elasticpath.Client, fileName string, logger *logrus.Logger) error {
	var records []productRecord
	if err := readJSON(fileName, &records); err != nil {
		return err
	}

	httpClient := resty.New().SetTimeout(constants.DefaultTimeout * time.Second)

	for _, record := range records {
		product, err := client.CreateProduct(ctx, elasticpath.NewProduct{
			Name:          record.Name,
			Slug:          slugify(record.Name),
			SKU:           record.Name,
			Description:   record.Description,
			PriceAmount:   record.Price,
			PriceCurrency: "RUB",
		})
		if err != nil {
			return fmt.Errorf("create product %q: %w", record.Name, err)
		}
		logger.Infof("Created product %s (%s)", product.Name, product.ID)

		if record.Image.URL == "" {
			continue
		}

		resp, err := httpClient.R().SetContext(ctx).Get(record.Image.URL)
		if err != nil {
			return fmt.Errorf("download image for %q: %w", record.Name, err)
		}

		fileID, err := client.CreateFile(ctx, path.Base(record.Image.URL), bytes.NewReader(resp.Body()))
		if err != nil {
			return fmt.Errorf("upload image for %q: %w", record.Name, err)
		}
		if err := client.AddMainImage(ctx, product.ID, fileID); err != nil {
			return fmt.Errorf("assign image for %q: %w", record.Name, err)
		}
	}

	logger.Infof("Uploaded %d products", len(records))
	return nil
}

// uploadShops creates a flow entry for every shop from the seed file.
func uploadShops(ctx context.Context, client *elasticpath.Client, fileName, flowSlug string, logger *logrus.Logger) error {
	var records []shopRecord
	if err := readJSON(fileName, &records); err != nil {
		return err
	}

	for _, record := range records {
		lon, err := record.Coordinates.Lon.Float64()
		if err != nil {
			return fmt.Errorf("bad longitude for shop %q: %w", record.Alias, err)
		}
		lat, err := record.Coordinates.Lat.Float64()
		if err != nil {
			return fmt.Errorf("bad latitude for shop %q: %w", record.Alias, err)
		}

		err = client.CreateFlowEntry(ctx, flowSlug, map[string]interface{}{
			"Address":   record.Address.Full,
			"Alias":     record.Alias,
			"Longitude": lon,
			"Latitude":  lat,
		})
		if err != nil {
			return fmt.Errorf("create shop entry %q: %w", record.Alias, err)
		}
		logger.Infof("Created shop entry %s", record.Alias)
	}

	logger.Infof("Uploaded %d shops", len(records))
	return nil
}

func readJSON(fileName string, target interface{}) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// slugify turns a product name into a URL-safe slug.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
