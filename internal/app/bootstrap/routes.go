// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	classesfeature "github.com/lyceumhq/lyceum/internal/app/features/classes"
	contentfeature "github.com/lyceumhq/lyceum/internal/app/features/content"
	errorsfeature "github.com/lyceumhq/lyceum/internal/app/features/errors"
	healthfeature "github.com/lyceumhq/lyceum/internal/app/features/health"
	institutesfeature "github.com/lyceumhq/lyceum/internal/app/features/institutes"
	membersfeature "github.com/lyceumhq/lyceum/internal/app/features/members"
	periodsfeature "github.com/lyceumhq/lyceum/internal/app/features/periods"
	sectionsfeature "github.com/lyceumhq/lyceum/internal/app/features/sections"
	studyplansfeature "github.com/lyceumhq/lyceum/internal/app/features/studyplans"
	subjectsfeature "github.com/lyceumhq/lyceum/internal/app/features/subjects"
	workspacesfeature "github.com/lyceumhq/lyceum/internal/app/features/workspaces"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The identity middleware runs on every route. Workspace resolution runs
// only on the domain subtree: the workspace and institute endpoints must
// stay reachable for users who have no workspace yet (that is where they
// create one), so they resolve explicitly per handler instead.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.LyceumMongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(identity.Middleware(appCfg.IdentityHeader))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.LyceumMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Workspace and institute management (identity only, no resolved workspace)
	workspacesHandler := workspacesfeature.NewHandler(db, errLog, logger)
	r.Mount("/workspaces", workspacesfeature.Routes(workspacesHandler))

	institutesHandler := institutesfeature.NewHandler(db, errLog, logger)
	r.Mount("/institutes", institutesfeature.Routes(institutesHandler))

	// Domain endpoints: every request resolves a workspace descriptor first
	// and all reads/writes are scoped through it.
	r.Group(func(r chi.Router) {
		r.Use(wsctx.Middleware(db, appCfg.WorkspaceHeader, logger))

		classesHandler := classesfeature.NewHandler(db, errLog, logger)
		r.Mount("/classes", classesfeature.Routes(classesHandler))

		membersHandler := membersfeature.NewHandler(db, errLog, logger)
		r.Mount("/members", membersfeature.Routes(membersHandler))

		sectionsHandler := sectionsfeature.NewHandler(db, errLog, logger)
		r.Mount("/sections", sectionsfeature.Routes(sectionsHandler))

		subjectsHandler := subjectsfeature.NewHandler(db, errLog, logger)
		r.Mount("/subjects", subjectsfeature.Routes(subjectsHandler))

		periodsHandler := periodsfeature.NewHandler(db, errLog, logger)
		r.Mount("/periods", periodsfeature.Routes(periodsHandler))

		contentHandler := contentfeature.NewHandler(db, errLog, logger)
		r.Mount("/content", contentfeature.Routes(contentHandler))

		studyplansHandler := studyplansfeature.NewHandler(db, errLog, logger)
		r.Mount("/studyplans", studyplansfeature.Routes(studyplansHandler))
	})

	return r, nil
}
