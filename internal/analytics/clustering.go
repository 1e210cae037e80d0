package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backend/internal/models"

	"go.uber.org/zap"
)

// Pain-point taxonomy: 5 fixed, mutually exclusive clusters.
const (
	clusterCount          = 5
	fallbackCluster       = 0
	maxExamplesPerCluster = 5
)

var clusterDefinitions = [clusterCount]string{
	"General branch hours / orders / pool questions",
	"Pump recommendations – product discovery",
	"Replacement filter parts – maintenance needs",
	"Stock availability by part number – inventory checks",
	"DE filter assembly – technical support",
}

// fewShotPrompt is the fixed instruction/examples preamble sent with every
// classification request. The decision itself is delegated to the external
// model; the examples are context, not rules.
const fewShotPrompt = `You are classifying customer queries for a pool and landscape supply company into 5 categories.

Categories and Examples:

Cluster 0: General branch hours, order status, locations, general pool/landscape questions
Examples:
- "What are your hours?"
- "Where is the nearest branch?"
- "How do I track my order?"
- "What pool chemicals do you recommend?"

Cluster 1: Pump recommendations and product discovery (customer looking for product suggestions)
Examples:
- "What pumps do you carry?"
- "I need a variable speed pump recommendation"
- "Looking for a pentair heat pump"
- "Best pump for above ground pool?"

Cluster 2: Replacement filter parts and maintenance needs (customer needs specific parts for maintenance)
Examples:
- "I need a hayward skimmer basket"
- "Replacement grid assembly for filter"
- "Filter cartridge for C5030"
- "Need O-rings for my pump"

Cluster 3: Stock availability and inventory checks by part number
Examples:
- "Do you have part# 12345 in stock?"
- "Is the F5B available?"
- "Do you carry CX580XRE?"
- "Stock check on hayward SP1091LX"

Cluster 4: DE filter assembly and technical support (technical help, installation, troubleshooting)
Examples:
- "How do I assemble a DE filter?"
- "My filter is leaking, help?"
- "Installation guide for grid assembly"
- "Troubleshoot pump not priming"

Respond ONLY with the cluster number (0-4). Do not use thinking tags. Just output the number.`

var (
	errNoClusterDigit    = errors.New("no digit found in classifier response")
	errClusterOutOfRange = errors.New("classifier digit outside cluster range")
)

// classification is the per-item outcome of one classifier call. A failed
// item carries its error and is mapped to the fallback cluster afterwards;
// it never aborts the batch.
type classification struct {
	Cluster int
	Err     error
}

// classifyOne sends a single query to the external classifier and parses
// the first decimal digit of the response.
func (s *analyticsService) classifyOne(ctx context.Context, query string) classification {
	prompt := fmt.Sprintf("%s\n\nQuery to classify: %q\n\nCluster number:", fewShotPrompt, query)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return classification{Err: err}
	}

	for _, r := range text {
		if r >= '0' && r <= '9' {
			id := int(r - '0')
			if id >= clusterCount {
				return classification{Err: errClusterOutOfRange}
			}
			return classification{Cluster: id}
		}
	}
	return classification{Err: errNoClusterDigit}
}

// classifyBatch assigns a cluster to every query, one classifier call per
// non-empty input. The fallback mapping is applied uniformly at the end so
// every failure mode lands in cluster 0 the same way.
func (s *analyticsService) classifyBatch(ctx context.Context, queries []string) []int {
	outcomes := make([]classification, len(queries))
	for i, query := range queries {
		if strings.TrimSpace(query) == "" {
			outcomes[i] = classification{Cluster: fallbackCluster}
			continue
		}
		outcomes[i] = s.classifyOne(ctx, query)
	}

	clusters := make([]int, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			s.logger.Warn("query classification failed, assigning fallback cluster",
				zap.Int("index", i),
				zap.Error(outcome.Err))
			clusters[i] = fallbackCluster
			continue
		}
		clusters[i] = outcome.Cluster
	}
	return clusters
}

// PainPointClustering is KPI #2: all free-text queries in range, clustered
// into the fixed taxonomy with counts, percentages and sampled examples.
func (s *analyticsService) PainPointClustering(ctx context.Context, f *models.AnalyticsFilters) (*models.PainPointClusteringResult, error) {
	rows, err := s.repo.UserQueries(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.PainPointClusteringResult{
		Clusters:       []models.Cluster{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	queries := make([]string, len(rows))
	for i, row := range rows {
		queries[i] = row.UserQuery
	}

	assignments := s.classifyBatch(ctx, queries)

	counts := [clusterCount]int{}
	examples := [clusterCount][]string{}
	for i, cluster := range assignments {
		counts[cluster]++
		if len(examples[cluster]) < maxExamplesPerCluster {
			examples[cluster] = append(examples[cluster], queries[i])
		}
	}

	result.TotalQueries = len(queries)
	for id := 0; id < clusterCount; id++ {
		sampled := examples[id]
		if sampled == nil {
			sampled = []string{}
		}
		result.Clusters = append(result.Clusters, models.Cluster{
			ClusterID:      id,
			ClusterName:    clusterDefinitions[id],
			Count:          counts[id],
			Percentage:     percentage(counts[id], len(queries)),
			ExampleQueries: sampled,
		})
	}
	return result, nil
}
