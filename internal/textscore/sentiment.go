package textscore

import "math"

// lexicon maps words to a polarity in [-1, 1].
var lexicon = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1.0, "best": 1.0, "better": 0.5,
	"positive": 0.23, "happy": 0.8, "win": 0.8, "wins": 0.8, "won": 0.6,
	"success": 0.3, "successful": 0.75, "growth": 0.3, "improve": 0.4,
	"improved": 0.4, "improvement": 0.4, "strong": 0.43, "safe": 0.5,
	"celebrate": 0.5, "celebrates": 0.5, "celebration": 0.5, "hope": 0.4,
	"hopeful": 0.5, "love": 0.5, "beautiful": 0.85, "wonderful": 1.0,
	"amazing": 0.6, "award": 0.4, "awarded": 0.4, "boost": 0.4, "boosts": 0.4,
	"recovery": 0.3, "record": 0.2, "new": 0.14, "free": 0.4, "support": 0.3,
	"peace": 0.5, "peaceful": 0.5, "benefit": 0.4, "benefits": 0.4, "rescue": 0.3,
	"rescued": 0.3, "thrive": 0.6, "innovative": 0.5, "innovation": 0.4,
	"progress": 0.4, "gain": 0.3, "gains": 0.3, "rise": 0.1, "surge": 0.2,
	"historic": 0.3, "top": 0.5, "popular": 0.6, "exciting": 0.3, "fun": 0.3,
	"nice": 0.6, "fair": 0.7, "clean": 0.37, "healthy": 0.5, "welcome": 0.8,
	"bad": -0.7, "worse": -0.4, "worst": -1.0, "negative": -0.3, "sad": -0.5,
	"terrible": -1.0, "awful": -1.0, "horrible": -1.0, "poor": -0.4,
	"crisis": -0.5, "death": -0.6, "dead": -0.2, "deadly": -0.6, "die": -0.5,
	"dies": -0.5, "died": -0.5, "kill": -0.6, "killed": -0.6, "killing": -0.6,
	"attack": -0.5, "attacks": -0.5, "war": -0.5, "violence": -0.6,
	"violent": -0.8, "crime": -0.5, "criminal": -0.5, "fraud": -0.7,
	"corruption": -0.6, "corrupt": -0.6, "fail": -0.5, "fails": -0.5,
	"failed": -0.5, "failure": -0.5, "loss": -0.4, "losses": -0.4, "lost": -0.3,
	"fear": -0.5, "fears": -0.5, "threat": -0.4, "threats": -0.4,
	"danger": -0.6, "dangerous": -0.6, "injured": -0.5, "injury": -0.5,
	"protest": -0.2, "protests": -0.2, "strike": -0.2, "fire": -0.3,
	"flood": -0.4, "floods": -0.4, "shortage": -0.4, "decline": -0.3,
	"drop": -0.2, "falls": -0.2, "fell": -0.2, "collapse": -0.6,
	"scandal": -0.6, "accused": -0.3, "arrest": -0.3, "arrested": -0.3,
	"shooting": -0.6, "storm": -0.3, "disaster": -0.8, "angry": -0.5,
	"warning": -0.3, "risk": -0.3, "unsafe": -0.5, "illegal": -0.5,
	"wrong": -0.5, "hard": -0.29, "difficult": -0.5, "problem": -0.3,
	"problems": -0.3, "outage": -0.4, "blackout": -0.4, "unemployment": -0.4,
	"poverty": -0.5, "delay": -0.2, "delays": -0.2, "ban": -0.3,
}

var negations = toSet([]string{"not", "no", "never", "nor", "without", "t"})

var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "really": 1.2, "highly": 1.3,
	"most": 1.3, "so": 1.2, "incredibly": 1.5, "deeply": 1.3,
}

// AnalyzeSentiment scores text polarity in [-1, 1]; neutral or empty text scores 0.
func AnalyzeSentiment(text string) float64 {
	tokens := Tokenize(text)

	var (
		total float64
		hits  int
	)
	for i, tok := range tokens {
		polarity, ok := lexicon[tok]
		if !ok {
			continue
		}

		if i > 0 {
			if factor, ok := intensifiers[tokens[i-1]]; ok {
				polarity *= factor
			}
		}
		if negatedAt(tokens, i) {
			polarity *= -0.5
		}

		total += clamp(polarity)
		hits++
	}

	if hits == 0 {
		return 0
	}
	return clamp(total / float64(hits))
}

// negatedAt looks back up to two tokens for a negation word.
func negatedAt(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if _, ok := negations[tokens[j]]; ok {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
