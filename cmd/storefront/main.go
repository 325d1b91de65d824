package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/checkout"
	auditsqlite "github.com/jcmexdev/mystore/internal/checkout/auditlog/sqlite"
	"github.com/jcmexdev/mystore/internal/config"
	"github.com/jcmexdev/mystore/internal/httpx"
	"github.com/jcmexdev/mystore/internal/notification"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/payment"
	"github.com/jcmexdev/mystore/internal/pkg/cache"
	"github.com/jcmexdev/mystore/internal/pkg/telemetry"
	"github.com/jcmexdev/mystore/internal/review"
	"github.com/jcmexdev/mystore/internal/session"
	"github.com/jcmexdev/mystore/internal/shipping"
	"github.com/jcmexdev/mystore/internal/storage/sqlite"
	"github.com/jcmexdev/mystore/internal/wishlist"
)

const serviceName = "storefront"

func main() {
	cfg := config.Load()
	telemetry.InitLogger()
	ctx := context.Background()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, serviceName)
		if err != nil {
			log.Fatalf("could not set up tracing: %v", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatalf("could not create data directory: %v", err)
	}
	kv, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("could not open store database: %v", err)
	}
	defer kv.Close()

	auditLog, err := auditsqlite.New(kv.DB())
	if err != nil {
		log.Fatalf("could not set up checkout audit log: %v", err)
	}

	var invoiceCache cache.Cache
	if cfg.RedisAddr != "" {
		invoiceCache = cache.NewRedisCache(cfg.RedisAddr, serviceName)
	}

	cat := catalog.Default()
	cartSvc := cart.New(kv)
	wishlistSvc := wishlist.New(kv)
	orderSvc := order.New(kv, cartSvc, order.WithPricing(order.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
		TaxRate:               cfg.TaxRate,
	}))
	paymentSvc := payment.New(kv)
	shippingSvc := shipping.New(kv)
	notificationSvc := notification.New(kv)
	reviewSvc := review.New(kv)
	sessionStore := session.New(kv)
	checkoutSvc := checkout.New(cat, cartSvc, orderSvc, paymentSvc,
		checkout.WithAuditLog(auditLog))

	handler := httpx.NewHandler(httpx.Deps{
		Catalog:       cat,
		Cart:          cartSvc,
		Wishlist:      wishlistSvc,
		Orders:        orderSvc,
		Payments:      paymentSvc,
		Shipping:      shippingSvc,
		Notifications: notificationSvc,
		Reviews:       reviewSvc,
		Session:       sessionStore,
		Checkout:      checkoutSvc,
		Cache:         invoiceCache,
	})
	router := httpx.NewRouter(handler)

	slog.Info("storefront running", "addr", cfg.HTTPAddr, "db", cfg.DBPath)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}
