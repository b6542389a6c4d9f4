package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"solarflow/bizerror"
	"solarflow/domain/customer"
	"solarflow/domain/customer/customerrest"
	"solarflow/domain/document"
	"solarflow/domain/employee"
	"solarflow/domain/plant"
	"solarflow/domain/task"
	"solarflow/domain/task/taskrest"
	"solarflow/domain/transaction"
	"solarflow/event"
	"solarflow/infra/tracing"
	"solarflow/persistence"
	"solarflow/session"
	"solarflow/sessions"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"
	"github.com/uber/jaeger-lib/metrics"
)

const serviceName = "solarflow"

func main() {
	_ = godotenv.Load()

	logrus.Infoln("service start")

	tracerCloser := bootstrapTracer()
	if tracerCloser != nil {
		defer func() {
			_ = tracerCloser.Close()
		}()
	}

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		logrus.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database conneciton failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(
		&employee.Employee{}, &customer.RegisteredCustomer{}, &task.Task{},
		&document.AdditionalDocument{}, &transaction.TransactionLog{}, &plant.PlantInstallation{},
		&event.EventRecord{}).Error
	if err != nil {
		logrus.Fatalf("database migration failed %v\n", err)
	}

	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, serviceName)
	})

	sessions.RegisterSessionsHandler(engine)

	secured := session.SimpleAuthFilter()
	employee.RegisterEmployeesRestAPI(engine, secured)
	customerrest.RegisterCustomersRestAPI(engine, secured)
	taskrest.RegisterTasksRestAPI(engine, secured)
	document.RegisterDocumentsRestAPI(engine, secured)
	transaction.RegisterTransactionsRestAPI(engine, secured)
	plant.RegisterPlantInstallationsRestAPI(engine, secured)

	port := os.Getenv("PORT")
	if port == "" {
		port = "80"
	}
	if err := engine.Run(":" + port); err != nil {
		panic(err)
	}
}

// bootstrapTracer wires the jaeger tracer from JAEGER_* env vars. Without an
// agent configured the no-op tracer stays in place.
func bootstrapTracer() io.Closer {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		logrus.Warnf("failed to parse jaeger config %v\n", err)
		return nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerlog.StdLogger), jaegercfg.Metrics(metrics.NullFactory))
	if err != nil {
		logrus.Warnf("failed to build jaeger tracer %v\n", err)
		return nil
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}
