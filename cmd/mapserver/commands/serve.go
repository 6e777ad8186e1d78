package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapselect/mapserver/internal/app"
	"github.com/mapselect/mapserver/internal/clock"
	"github.com/mapselect/mapserver/internal/config"
	"github.com/mapselect/mapserver/internal/discovery"
	transporthttp "github.com/mapselect/mapserver/internal/transport/http"
	"github.com/mapselect/mapserver/internal/zoneimport"
	"github.com/mapselect/mapserver/internal/zonestore"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		port     string
		distDir  string
		mapDir   string
		cors     string
		bounds   string
		seedFile string
		mdnsName string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the zone API, the built frontend and map images",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("dist") {
				cfg.DistDir = distDir
			}
			if flags.Changed("map-dir") {
				cfg.MapDir = mapDir
			}
			if flags.Changed("cors") {
				cfg.CORSOrigins = config.ParseCSV(cors)
			}
			if flags.Changed("bounds") {
				b, err := config.ParseBounds(bounds)
				if err != nil {
					return err
				}
				cfg.Bounds = b
			}
			if flags.Changed("seed") {
				cfg.SeedFile = seedFile
			}
			if flags.Changed("mdns") {
				cfg.MDNSName = mdnsName
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", config.DefaultPort, "listen port (env PORT)")
	cmd.Flags().StringVar(&distDir, "dist", config.DefaultDistDir, "built frontend directory (env DIST_DIR)")
	cmd.Flags().StringVar(&mapDir, "map-dir", config.DefaultMapDir, "map image directory served under /map/ (env MAP_DIR)")
	cmd.Flags().StringVar(&cors, "cors", config.DefaultCORSOrigins, "comma-separated allowed origins (env CORS_ORIGINS)")
	cmd.Flags().StringVar(&bounds, "bounds", "", "accepted zone area minX,minY,maxX,maxY (env ZONE_BOUNDS)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "CSV or DBF file of zones to load at startup (env SEED_FILE)")
	cmd.Flags().StringVar(&mdnsName, "mdns", "", "announce this .local name over mDNS (env MDNS_NAME)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if info, err := os.Stat(cfg.DistDir); err != nil || !info.IsDir() {
		logger.Printf("WARN: frontend directory %s not found, build the frontend first", cfg.DistDir)
	}

	application := app.NewApplication()
	if err := application.Use(app.FrontendPlugin{DistDir: cfg.DistDir, MapDir: cfg.MapDir}); err != nil {
		return err
	}
	store := zonestore.New(zonestore.WithLogger(log.New(os.Stderr, "zones: ", log.LstdFlags)))
	if err := application.Use(app.ZonePlugin{Store: store, Clock: clock.NewSystem(), Bounds: cfg.Bounds}); err != nil {
		return err
	}

	if cfg.SeedFile != "" {
		res, err := zoneimport.New(application.Zones(), logger).ImportFile(ctx, cfg.SeedFile)
		if err != nil {
			return err
		}
		logger.Printf("seeded %d zones from %s (%d skipped)", res.Imported, cfg.SeedFile, res.Skipped)
	}

	drain := transporthttp.NewDrain()
	handler := application.Mount(func(a *app.Application) http.Handler {
		return transporthttp.NewRouter(a, cfg.CORSOrigins, logger, drain)
	})

	if cfg.MDNSName != "" {
		announcer, err := discovery.Announce(cfg.MDNSName, logger)
		if err != nil {
			logger.Printf("WARN: mdns disabled: %v", err)
		} else {
			defer announcer.Close()
		}
	}

	server := newHTTPServer(":"+cfg.Port, handler, drain)

	logger.Printf("serving %s on :%s, map images under /map/ from %s", cfg.DistDir, cfg.Port, cfg.MapDir)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stopCtx.Done():
		logger.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("server shutdown error: %v", err)
	}
	logger.Printf("server stopped")
	return nil
}

// newHTTPServer returns a server whose Shutdown also ends open zone
// streams, which would otherwise hold it until shutdownTimeout.
func newHTTPServer(addr string, handler http.Handler, drain *transporthttp.Drain) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(drain.Close)
	return server
}
