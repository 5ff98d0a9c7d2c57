package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wellmap/db"
	"wellmap/export"
	"wellmap/extract"
	"wellmap/handler"
	"wellmap/render"
	"wellmap/scraper"
	"wellmap/storage"
	"wellmap/utils"
)

func main() {
	mode := "serve"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode = args[0]
		args = args[1:]
	}

	switch mode {
	case "serve":
		runServe()
	case "import":
		runImport(args)
	case "scrape":
		runScrape(args)
	case "render":
		runRender(args)
	case "export":
		runExport(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "usage: wellmap [serve|import|scrape|render|export] [flags]")
		os.Exit(2)
	}
}

func runServe() {
	// 1. Database: connect, migrate, seed if empty.
	db.InitDB()

	// 2. PDF object storage is optional; the /pdf route 404s without it.
	if pdfs, err := storage.NewPDFStore(); err != nil {
		log.Printf("pdf storage disabled: %v", err)
	} else {
		handler.PDFs = pdfs
		if err := pdfs.EnsureBucket(context.Background()); err != nil {
			log.Printf("warning: pdf bucket check failed: %v", err)
		}
	}

	// 3. Router.
	r := gin.Default()
	setupRoutes(r)

	addr := ":" + db.GetEnvOrDefault("PORT", "8080")
	log.Printf("wellmap listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// setupRoutes wires the map page and the wells API.
func setupRoutes(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "ok"})
	})

	// The rendered Leaflet map.
	r.GET("/", handler.MapPage)

	api := r.Group("/api")
	{
		api.POST("/login", handler.Login)
		api.POST("/register", handler.Register)

		api.GET("/wells", handler.GetWells)
		api.GET("/wells/search", handler.SearchWells)
		api.GET("/wells/near", handler.NearWells)
		api.GET("/wells/:api", handler.GetWellByAPI)
		api.GET("/wells/:api/pdf", handler.WellPDF)

		admin := api.Group("/admin")
		admin.Use(handler.AuthMiddleware())
		{
			admin.POST("/import", handler.ImportExtracted)
		}
	}
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", "extracted_data", "directory of extraction JSON documents")
	pdfDir := fs.String("pdfs", "", "directory of source well file PDFs to upload to object storage")
	fs.Parse(args)

	db.InitDB()
	stats, err := extract.ImportDir(db.DB, *dir)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("import finished: %d files, %d wells, %d stimulation rows",
		stats.Files, stats.Wells, stats.Stimulations)

	if *pdfDir != "" {
		uploadPDFs(*pdfDir)
	}
}

// uploadPDFs pushes the source well files behind the /pdf route into object
// storage.
func uploadPDFs(dir string) {
	pdfs, err := storage.NewPDFStore()
	if err != nil {
		log.Fatalf("pdf upload requested but storage is not configured: %v", err)
	}

	ctx := context.Background()
	if err := pdfs.EnsureBucket(ctx); err != nil {
		log.Fatalf("pdf bucket check failed: %v", err)
	}
	n, err := pdfs.UploadDir(ctx, dir)
	if err != nil {
		log.Fatalf("pdf upload failed: %v", err)
	}
	log.Printf("uploaded %d well file PDFs", n)
}

func runScrape(args []string) {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	limit := fs.Int("limit", 0, "max wells to scrape (0 = all)")
	all := fs.Bool("all", false, "rescrape wells that already have drillingedge data")
	delay := fs.Duration("delay", 2*time.Second, "pause between requests")
	fs.Parse(args)

	db.InitDB()
	ctx, cancel := utils.GracefulContext(context.Background())
	defer cancel()

	s := scraper.New()
	s.Delay = *delay
	if pub := scraper.NewPublisherFromEnv(); pub != nil {
		s.Publisher = pub
		defer pub.Close()
	}

	if err := s.Run(ctx, db.DB, *limit, !*all); err != nil && err != context.Canceled {
		log.Fatalf("scrape failed: %v", err)
	}
}

func runRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	endpoint := fs.String("endpoint", "http://localhost:8080/api/wells", "wells endpoint to fetch")
	out := fs.String("o", "wells_map.html", "output HTML file")
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := render.NewClient(*endpoint).Run(ctx)
	if err != nil {
		// The page is still written so the status line shows what went wrong.
		res = render.FailureResult("Error loading wells: " + err.Error())
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := render.WritePage(f, res); err != nil {
		log.Fatalf("write page: %v", err)
	}
	log.Printf("%s | wrote %s", res.Stats, *out)
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("shp", "wells.shp", "output shapefile")
	fs.Parse(args)

	db.InitDB()
	n, err := export.Shapefile(db.DB, *out)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("wrote %d wells to %s", n, *out)
}
