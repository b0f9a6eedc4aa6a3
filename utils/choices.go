package utils

// NoAnswer is the sentinel the form sends for an unanswered optional field.
// It is stored as NULL, never as a literal value.
const NoAnswer = "未回答"

// ScaleOrder is the fixed presentation order of the question groups.
// F is the validity-check group.
var ScaleOrder = []string{"A", "B", "C", "D", "E", "F"}

var GenderChoices = []string{NoAnswer, "男性", "女性", "その他", "回答しない"}

var AgeBandChoices = []string{NoAnswer, "〜20代", "30代", "40代", "50代", "60代〜"}

type LikertChoice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

var LikertChoices = []LikertChoice{
	{Value: 1, Label: "全くあてはまらない（1）"},
	{Value: 2, Label: "あてはまらない（2）"},
	{Value: 3, Label: "ややあてはまらない（3）"},
	{Value: 4, Label: "ややあてはまる（4）"},
	{Value: 5, Label: "あてはまる（5）"},
	{Value: 6, Label: "非常にあてはまる（6）"},
}

// ValidScale reports whether s is one of the six recognized scales.
func ValidScale(s string) bool {
	for _, v := range ScaleOrder {
		if s == v {
			return true
		}
	}
	return false
}

// ValidChoice reports whether v is one of the allowed vocabulary entries.
func ValidChoice(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
