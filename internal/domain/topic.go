package domain

// OutlierTopic is the reserved label for articles no topic could claim.
const OutlierTopic = -1

// MinClusterDocuments is the smallest corpus the clustering engine is asked to split.
const MinClusterDocuments = 3

// WeightedTerm is a word paired with a frequency or characteristic weight.
type WeightedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// TopicCluster groups article indices judged to share a theme.
type TopicCluster struct {
	TopicID        int            `json:"topicId"`
	Members        []int          `json:"members"`
	Signature      []WeightedTerm `json:"signature"`
	Representative int            `json:"representative"`
}

// IsOutlier reports whether the cluster is the unclustered group.
func (c TopicCluster) IsOutlier() bool {
	return c.TopicID == OutlierTopic
}
