// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	periodstore "github.com/lyceumhq/lyceum/internal/app/store/periods"
	sectionstore "github.com/lyceumhq/lyceum/internal/app/store/sections"
	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	subjectstore "github.com/lyceumhq/lyceum/internal/app/store/subjects"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("institutes", institutestore.New(db).EnsureIndexes)
	ensure("memberships", membershipstore.New(db).EnsureIndexes)
	ensure("classes", classstore.New(db).EnsureIndexes)
	ensure("class_members", classmemberstore.New(db).EnsureIndexes)
	ensure("periods", periodstore.New(db).EnsureIndexes)
	ensure("sections", sectionstore.New(db).EnsureIndexes)
	ensure("subjects", subjectstore.New(db).EnsureIndexes)
	ensure("content", contentstore.New(db).EnsureIndexes)
	ensure("study_plans", studyplanstore.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
