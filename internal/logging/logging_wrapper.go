package logging

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		log.Infof("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req.WithContext(WithLogData(req.Context(), logData)), logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware gives every request its own LogData and writes one completion
// line named after the matched chi route.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)
			if requestID := middleware.GetReqID(req.Context()); requestID != "" {
				logData.AddData("requestID", requestID)
			}

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			endTimer := logData.AddTiming("duration")
			next.ServeHTTP(ww, req.WithContext(WithLogData(req.Context(), logData)))
			endTimer()

			name := req.URL.Path
			if routeCtx := chi.RouteContext(req.Context()); routeCtx != nil && routeCtx.RoutePattern() != "" {
				name = routeCtx.RoutePattern()
			}
			logData.AddData("status", ww.Status())

			entry := logData.Log()
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				entry.Errorf("Handler.%v.Error", name)
			case ww.Status() >= http.StatusBadRequest:
				entry.Warnf("Handler.%v.Rejected", name)
			default:
				entry.Infof("Handler.%v.Complete", name)
			}
		})
	}
}
