package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"
)

// App bundles the process-wide dependencies handlers need.
type App struct {
	DBConn       *pgxpool.Pool
	Queue        *amqp091.Channel
	MasterAPIKey string
}

// AppContext wraps the echo context with the application dependencies.
type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(db *pgxpool.Pool, queue *amqp091.Channel, masterAPIKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				DBConn:       db,
				Queue:        queue,
				MasterAPIKey: masterAPIKey,
			}
			return next(&AppContext{c, app})
		}
	}
}
