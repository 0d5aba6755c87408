package api

import (
	"net/http"
	"strings"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

const (
	APIPath     = "/api/v1/openapi.json"
	MIMEForm    = "multipart/form-data"
	StaticRoute = "/app/"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	analyze := new(restful.WebService)

	analyze.
		Path("/analyze").
		Consumes(MIMEForm).
		Produces(restful.MIME_JSON)

	analyze.
		Route(analyze.POST("").
			To(handler.Analyze).
			Doc("Audit the last exchange of a chat transcript").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyze"}).
			Param(analyze.FormParameter(ChatFileField, "Chat transcript JSON").DataType("file").Required(true)).
			Param(analyze.FormParameter(ContextFileField, "Retrieval context dump JSON").DataType("file").Required(true)).
			Writes(models.AnalysisResult{}).
			Returns(200, "OK", models.AnalysisResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(413, "Request Entity Too Large", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(analyze)

	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/evaluate/judge/{judge_name}").
			To(handler.EvaluateSingleJudge).
			Doc("Evaluate an exchange with a single judge").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluate"}).
			Param(ws.PathParameter("judge_name", "Judge name (relevance, faithfulness)").DataType("string")).
			Reads(models.JudgeRequest{}).
			Writes(models.JudgeEvaluation{}).
			Returns(200, "OK", models.JudgeEvaluation{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Judge Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       APIPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

// RegisterStatic serves staticDir under /app/ and redirects / to the UI.
func RegisterStatic(container *restful.Container, staticDir string) {
	container.HandleWithFilter(StaticRoute, http.StripPrefix(StaticRoute, serveIndexInPlace(http.FileServer(http.Dir(staticDir)))))
	container.HandleWithFilter("/", http.HandlerFunc(Root))
}

// serveIndexInPlace maps ".../index.html" to its directory so the file server
// answers with the page instead of a 301 to "./".
func serveIndexInPlace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/index.html") || r.URL.Path == "index.html" {
			r2 := new(http.Request)
			*r2 = *r
			u := *r.URL
			u.Path = strings.TrimSuffix(u.Path, "index.html")
			u.RawPath = ""
			r2.URL = &u
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}

// RegisterMetrics exposes the Prometheus handler at /metrics.
func RegisterMetrics(container *restful.Container, handler http.Handler) {
	container.Handle("/metrics", handler)
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Audit Agent API",
			Description: "Relevance and faithfulness audit of chatbot transcripts",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "analyze", Description: "Transcript audit"}},
		{TagProps: spec.TagProps{Name: "evaluate", Description: "Single judge evaluation"}},
	}
}
