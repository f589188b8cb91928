package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdaops/axon/pkg/cluster/argo"
	"github.com/mdaops/axon/pkg/cluster/feast"
	"github.com/mdaops/axon/pkg/cluster/filer"
	"github.com/mdaops/axon/pkg/cluster/health"
	"github.com/mdaops/axon/pkg/cluster/valkey"
	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	"github.com/mdaops/axon/pkg/echoutil"
	"github.com/mdaops/axon/pkg/utils/filewatch"

	"github.com/mdaops/axon/cmd/axon-gateway/handlers"
)

func main() {

	configPath := flag.String("config-path", "", "cluster config path. when omitted, well-known in-cluster endpoints are used")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf := kcc.Default()
	if *configPath != "" {
		c, err := kcc.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("can not read configration: %s", err)
		}
		conf = c

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}
	sec := kcc.SecretsFromEnv()

	// clients for the external services
	argoClient, err := argo.NewClient(
		conf.Argo.URL("https"), argo.WithToken(sec.ArgoToken),
	)
	if err != nil {
		log.Fatalf("can not create argo client: %s", err)
	}
	feastClient := feast.NewClient(conf.Feast.URL("http"))
	filerClient := filer.NewClient(conf.Filer.URL("http"))
	cache := valkey.New(conf.Valkey.Addr())
	defer cache.Close()

	// handlers
	{
		e.GET("/health/", handlers.HealthHandler(
			health.CheckFunc("argo", argoClient.Healthz),
			health.CheckFunc("feast", feastClient.Healthz),
			health.CheckFunc("filer", filerClient.Healthz),
			health.CheckFunc("valkey", cache.Healthz),
			health.TCPCheck("postgres", conf.Postgres.Addr()),
			health.TCPCheck("s3", conf.S3.Addr()),
		))
	}

	{
		e.POST("/api/features/", handlers.GetFeaturesHandler(
			cache, feastClient, conf.Gateway.CacheTTL, conf.Gateway.FeatureService,
		))
	}

	{
		e.GET("/api/workflows/", handlers.ListWorkflowsHandler(
			argoClient, conf.PipelineNamespace,
		))
		e.GET("/api/workflows/:name/", handlers.GetWorkflowHandler(
			argoClient, conf.PipelineNamespace, "name",
		))
	}

	{
		e.GET("/api/objects/*", handlers.GetObjectHandler(conf.Filer.URL("http")))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	addr := fmt.Sprintf(":%d", conf.Gateway.Port)
	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(addr, cert, key))
	} else {
		e.Logger.Fatal(e.Start(addr))
	}
}
