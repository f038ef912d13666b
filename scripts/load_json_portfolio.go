package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Conversly/carteira-api/internal/api/allocations"
	"github.com/Conversly/carteira-api/internal/api/assets"
	"github.com/Conversly/carteira-api/internal/api/clients"
	"github.com/Conversly/carteira-api/internal/loaders"
	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"go.uber.org/zap"
)

// PortfolioFile is the seed format. Ids in the file only link allocations to
// the clients and assets of the same file; the store assigns the real ones.
type PortfolioFile struct {
	Clients     []ClientRecord     `json:"clientes"`
	Assets      []AssetRecord      `json:"ativos"`
	Allocations []AllocationRecord `json:"alocacoes"`
}

type ClientRecord struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Status *bool  `json:"status"`
}

type AssetRecord struct {
	ID           int64         `json:"id"`
	Name         string        `json:"nome"`
	CurrentValue *types.Amount `json:"valorAtual"`
}

type AllocationRecord struct {
	ClientID int64         `json:"clienteId"`
	AssetID  int64         `json:"ativoId"`
	Quantity *types.Amount `json:"quantidade"`
}

type loadSummary struct {
	Clients     int
	Assets      int
	Allocations int
	Failed      int
}

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup happens before exiting.
func run() int {
	jsonFile := flag.String("file", "portfolio.json", "Path to the JSON file")
	dbDSN := flag.String("db", "", "PostgreSQL DSN connection string")
	ensureSchema := flag.Bool("schema", false, "Create the tables if they do not exist")
	flag.Parse()

	if *dbDSN == "" {
		fmt.Println("Error: Database DSN is required. Use -db flag")
		flag.Usage()
		return 1
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("Loading JSON file", zap.String("file", *jsonFile))
	portfolio, err := loadJSONFile(*jsonFile)
	if err != nil {
		logger.Error("Failed to load JSON file", zap.Error(err))
		return 1
	}

	logger.Info("Connecting to PostgreSQL database")
	pgClient, err := loaders.NewPostgresClient(ctx, *dbDSN, 2)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", zap.Error(err))
		return 1
	}
	defer pgClient.Close()

	if *ensureSchema {
		if err := pgClient.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to create schema", zap.Error(err))
			return 1
		}
	}

	summary := loadPortfolio(ctx, pgClient, portfolio, logger)
	logger.Info("Completed loading portfolio",
		zap.Int("clients", summary.Clients),
		zap.Int("assets", summary.Assets),
		zap.Int("allocations", summary.Allocations),
		zap.Int("failed", summary.Failed))
	if summary.Failed > 0 {
		return 2
	}
	return 0
}

func loadJSONFile(filePath string) (*PortfolioFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var portfolio PortfolioFile
	if err := json.NewDecoder(file).Decode(&portfolio); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return &portfolio, nil
}

// loadPortfolio inserts clients, then assets, then allocations, validating
// each record with the same rules as the API. A bad record is logged and
// skipped; allocations pointing at a skipped record are skipped too.
func loadPortfolio(ctx context.Context, store loaders.Store, portfolio *PortfolioFile, logger *zap.Logger) loadSummary {
	var summary loadSummary
	clientIDs := make(map[int64]int64, len(portfolio.Clients))
	assetIDs := make(map[int64]int64, len(portfolio.Assets))

	for _, rec := range portfolio.Clients {
		req := &clients.ClientRequest{Name: rec.Name, Email: rec.Email, Status: rec.Status}
		fields, err := validateClient(req)
		if err != nil {
			logger.Error("Invalid client record", zap.Int64("id", rec.ID), zap.Error(err))
			summary.Failed++
			continue
		}
		created, err := store.CreateClient(ctx, fields)
		if err != nil {
			logger.Error("Failed to insert client", zap.Int64("id", rec.ID), zap.Error(err))
			summary.Failed++
			continue
		}
		clientIDs[rec.ID] = created.ID
		summary.Clients++
	}

	for _, rec := range portfolio.Assets {
		req := &assets.AssetRequest{Name: rec.Name, CurrentValue: rec.CurrentValue}
		fields, err := validateAsset(req)
		if err != nil {
			logger.Error("Invalid asset record", zap.Int64("id", rec.ID), zap.Error(err))
			summary.Failed++
			continue
		}
		created, err := store.CreateAsset(ctx, fields)
		if err != nil {
			logger.Error("Failed to insert asset", zap.Int64("id", rec.ID), zap.Error(err))
			summary.Failed++
			continue
		}
		assetIDs[rec.ID] = created.ID
		summary.Assets++
	}

	for i, rec := range portfolio.Allocations {
		clientID, okClient := clientIDs[rec.ClientID]
		assetID, okAsset := assetIDs[rec.AssetID]
		if !okClient || !okAsset {
			logger.Error("Allocation references an unknown record",
				zap.Int("index", i),
				zap.Int64("clienteId", rec.ClientID),
				zap.Int64("ativoId", rec.AssetID))
			summary.Failed++
			continue
		}
		req := &allocations.CreateAllocationRequest{
			ClientID: clientID,
			AssetID:  assetID,
			Quantity: rec.Quantity,
		}
		fields, err := validateAllocation(req)
		if err != nil {
			logger.Error("Invalid allocation record", zap.Int("index", i), zap.Error(err))
			summary.Failed++
			continue
		}
		if _, err := store.CreateAllocation(ctx, fields); err != nil {
			logger.Error("Failed to insert allocation", zap.Int("index", i), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Allocations++
	}

	return summary
}

// The validators below run the binding tags first, as gin does for requests,
// then the feature schema checks.

func validateClient(req *clients.ClientRequest) (types.ClientFields, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return types.ClientFields{}, err
	}
	return clients.ValidateClientRequest(req)
}

func validateAsset(req *assets.AssetRequest) (types.AssetFields, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return types.AssetFields{}, err
	}
	return assets.ValidateAssetRequest(req)
}

func validateAllocation(req *allocations.CreateAllocationRequest) (types.AllocationFields, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return types.AllocationFields{}, err
	}
	return allocations.ValidateCreateRequest(req)
}
