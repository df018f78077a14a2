package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/ingest"

	"github.com/sirupsen/logrus"
)

// demo holdings in the dashboard export layout
const demoCSV = `Portfolio,Broker,Member,Company Name,Sector,Qty,Value At Cost,Value At Market Price
MBPS,ICICI Direct,John,Infosys,IT,40,58000.00,61240.50
MBPS,ICICI Direct,John,Tata Consultancy Services,IT,12,40800.00,44115.00
MBPS,Zerodha,John,HDFC Bank,Banking,30,45150.00,48210.00
MBPS,Zerodha,Mary,Reliance Industries,Energy,25,61250.00,73400.25
MBPS,Upstox,Mary,ITC,FMCG,200,52000.00,49680.00
Family,Upstox,Ravi,State Bank of India,Banking,100,57500.00,81230.00
Family,Groww,Ravi,Sun Pharma,Pharma,35,39200.00,56910.00
Family,Groww,Asha,Bharti Airtel,Telecom,50,41800.00,52350.75
Family,ICICI Direct,Asha,Larsen & Toubro,Infrastructure,10,28400.00,35210.00
Family,Zerodha,Asha,Bonus Shares,Banking,5,0,2150.00
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	db, err := database.Open(cfg.Driver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := database.New(db, logger)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	holdings, err := ingest.Read(strings.NewReader(demoCSV), logger)
	if err != nil {
		log.Fatalf("parse demo holdings: %v", err)
	}

	// reseeding replaces the previous demo dataset
	ds, err := repo.ReplaceDataset(ctx, "demo", "seed", "", holdings)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	fmt.Printf("Seeded dataset %s with %d holdings into %s\n", ds.ID, ds.Rows, cfg.Driver)
	fmt.Printf("Now open: http://localhost:%s/datasets/%s/report?group=sector\n", cfg.Port, ds.ID)
}
