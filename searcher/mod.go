package searcher

import "golf/meta"

// Defaults for risk assessment

const DefaultTrials = meta.Trials
const DefaultBudget = meta.RiskBudget
const DefaultMaxCandidates = meta.MaxCandidates

// angleSpread is the ratio between the angle and distance deviations of a shot.
const angleSpread = 0.5
