package checks

import (
	"context"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/readme"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

// citationFiles are checked in this order; the first present one is reported.
var citationFiles = []string{"CITATION", "CITATION.cff", "codemeta.json", ".zenodo.json"}

// CitationRule checks that the software is citable: the repository carries
// citation metadata or the README links a Zenodo DOI.
type CitationRule struct{}

func init() {
	rules.Register(&CitationRule{})
}

func (r *CitationRule) ID() string {
	return assess.CriterionCitation
}

func (r *CitationRule) Title() string {
	return "Citation Information"
}

func (r *CitationRule) Description() string {
	return "Verifies that the repository contains CITATION, CITATION.cff, codemeta.json or .zenodo.json, or that the README carries a Zenodo DOI badge."
}

func (r *CitationRule) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{
		data.DepRepoRootFiles,
		data.DepRepoReadmeBadges,
	}, nil
}

func (r *CitationRule) Evaluate(ctx context.Context, repo *github.Repository, dc data.DataContext) (rules.Result, error) {
	val, ok := dc.Get(data.DepRepoRootFiles)
	if !ok || val == nil {
		return rules.ErrorResult(repo, r.ID(), "Dependency missing"), nil
	}
	files, ok := val.(models.RootFiles)
	if !ok {
		return rules.ErrorResult(repo, r.ID(), "Invalid dependency type"), nil
	}

	if name, found := files.FirstOf(citationFiles...); found {
		res := rules.PassResultWithMessage(repo, r.ID(), "Citation file found ("+name+")")
		return rules.WithEvidence(res, "file", name), nil
	}

	res := evaluateBadges(repo, r.ID(), dc, readme.CitationBadges, "citation")
	if res.Status == rules.StatusFail {
		res.Message = "No citation file or Zenodo badge found"
	}
	return res, nil
}
