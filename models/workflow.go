// ABOUTME: Workflow (onboarding, trend, topic, content) payload types
// ABOUTME: Demo analysis shapes kept byte-compatible with the original frontend

package models

// OnboardingRequest carries the interview text to analyze.
type OnboardingRequest struct {
	InterviewText string `json:"interview_text"`
}

// JourneyStage is one step of the demo customer-journey breakdown.
type JourneyStage struct {
	Stage    string   `json:"stage"`
	Insights []string `json:"insights"`
}

// OnboardingAnalysis is the fixed demo analysis returned alongside the
// keywords extracted by the backend.
type OnboardingAnalysis struct {
	PainPoints      []string       `json:"pain_points"`
	Motivations     []string       `json:"motivations"`
	Expectations    []string       `json:"expectations"`
	Feedback        []string       `json:"feedback"`
	Recommendations []string       `json:"recommendations"`
	CustomerJourney []JourneyStage `json:"customer_journey"`
	SentimentScore  int            `json:"sentiment_score"`
}

// OnboardingResponse pairs the demo analysis with extracted keywords.
type OnboardingResponse struct {
	Success           bool               `json:"success"`
	Analysis          OnboardingAnalysis `json:"analysis"`
	ExtractedKeywords []string           `json:"extracted_keywords"`
}

// TrendRequest carries the keyword candidates to score.
type TrendRequest struct {
	Keywords []string `json:"keywords"`
}

// KeywordTrend is one scored keyword. Fields the backend omits get the
// documented defaults (trend_score 70, search_volume 1000).
type KeywordTrend struct {
	Keyword      string `json:"keyword"`
	TrendScore   int    `json:"trend_score"`
	SearchVolume int    `json:"search_volume"`
	Competition  string `json:"competition"`
	Opportunity  string `json:"opportunity"`
}

// TrendAnalysis is the frontend-facing trend report.
type TrendAnalysis struct {
	Keywords        []string       `json:"keywords"`
	Trends          []KeywordTrend `json:"trends"`
	Insights        []string       `json:"insights"`
	Recommendations []string       `json:"recommendations"`
}

// TrendResponse wraps the analysis with a success flag.
type TrendResponse struct {
	Success  bool          `json:"success"`
	Analysis TrendAnalysis `json:"analysis"`
}

// TopicsRequest carries free-form content options for topic generation.
type TopicsRequest struct {
	ContentOptions map[string]interface{} `json:"content_options"`
}

// TopicsResponse relays the topics generated by the backend.
type TopicsResponse struct {
	Success bool                     `json:"success"`
	Topics  []map[string]interface{} `json:"topics"`
}

// KeywordData identifies the keyword a content draft is built around.
type KeywordData struct {
	BaseKeyword     string   `json:"base_keyword"`
	RelatedKeywords []string `json:"related_keywords,omitempty"`
}

// ContentRequest asks for a content draft for one keyword.
type ContentRequest struct {
	KeywordData    KeywordData            `json:"keyword_data"`
	ContentOptions map[string]interface{} `json:"content_options,omitempty"`
}

// GeneratedContent is the demo content draft.
type GeneratedContent struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
	SEOScore int      `json:"seo_score"`
}

// ContentResponse wraps a generated draft.
type ContentResponse struct {
	Success bool             `json:"success"`
	Content GeneratedContent `json:"content"`
}

// User-facing workflow error messages, preserved from the original product.
const (
	MsgInterviewTextRequired = "인터뷰 텍스트가 필요합니다."
	MsgOnboardingBackendFail = "온보딩 분석 실패(백엔드)"
	MsgOnboardingError       = "온보딩 분석 중 오류가 발생했습니다."
	MsgKeywordsRequired      = "키워드가 필요합니다."
	MsgTrendBackendFail      = "트렌드 분석 실패(백엔드)"
	MsgTrendError            = "트렌드 분석 중 오류가 발생했습니다."
	MsgOptionsRequired       = "콘텐츠 옵션이 필요합니다."
	MsgTopicsBackendFail     = "주제 생성 실패(백엔드)"
	MsgTopicsFailed          = "주제 생성에 실패했습니다."
	MsgTopicsError           = "주제 생성 중 오류가 발생했습니다."
	MsgKeywordDataRequired   = "키워드 데이터가 필요합니다."
	MsgContentError          = "콘텐츠 생성 중 오류가 발생했습니다."
)
