// ABOUTME: Demo workflow endpoints: onboarding analysis, trend scoring, topics, content
// ABOUTME: Thin transforms over the job backend plus fixed demo payloads

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kilexep/web-gateway/models"
)

const maxExtractedKeywords = 8

// AnalyzeOnboarding extracts keyword candidates from interview text via
// the job backend and pairs them with the fixed demo analysis the
// workflow pages render.
func (h *Handler) AnalyzeOnboarding(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.workflowError(w, models.MsgOnboardingError)
		return
	}
	if req.InterviewText == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   models.MsgInterviewTextRequired,
		})
		return
	}

	status, body, err := h.jobs.AnalyzeOnboarding(r.Context(), req.InterviewText)
	if err != nil {
		slog.Error("Onboarding analysis failed", "error", err)
		h.workflowError(w, models.MsgOnboardingError)
		return
	}
	if status < 200 || status >= 300 {
		h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   stringOr(gjson.GetBytes(body, "error"), models.MsgOnboardingBackendFail),
		})
		return
	}

	// Keyword candidates: content-demand keywords first, product terms as
	// backfill, deduplicated, capped at 8
	result := gjson.GetBytes(body, "result")
	keywords := mergeKeywords(
		result.Get("콘텐츠 수요 키워드").Array(),
		result.Get("제품군").Array(),
	)

	h.writeJSON(w, http.StatusOK, models.OnboardingResponse{
		Success:           true,
		Analysis:          demoOnboardingAnalysis(),
		ExtractedKeywords: keywords,
	})
}

// AnalyzeTrendKeywords scores keywords via the job backend, flattens its
// high/medium/low grouping, and applies the documented per-field defaults.
// Responses are cached briefly since scoring is expensive upstream.
func (h *Handler) AnalyzeTrendKeywords(w http.ResponseWriter, r *http.Request) {
	var req models.TrendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.workflowError(w, models.MsgTrendError)
		return
	}
	if len(req.Keywords) == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   models.MsgKeywordsRequired,
		})
		return
	}

	cacheKey := "trend:" + strings.Join(req.Keywords, ",")
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	status, body, err := h.jobs.AnalyzeTrendKeywords(r.Context(), req.Keywords)
	if err != nil {
		slog.Error("Trend analysis failed", "error", err)
		h.workflowError(w, models.MsgTrendError)
		return
	}
	if status < 200 || status >= 300 {
		h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   stringOr(gjson.GetBytes(body, "error"), models.MsgTrendBackendFail),
		})
		return
	}

	resp := models.TrendResponse{
		Success:  true,
		Analysis: buildTrendAnalysis(req.Keywords, body),
	}

	if h.cache != nil && h.cfg != nil {
		h.cache.SetWithTTL(cacheKey, resp, time.Duration(h.cfg.WorkflowTTL)*time.Second)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GenerateTopics relays topic generation to the job backend.
func (h *Handler) GenerateTopics(w http.ResponseWriter, r *http.Request) {
	var req models.TopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.workflowError(w, models.MsgTopicsError)
		return
	}
	if req.ContentOptions == nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   models.MsgOptionsRequired,
		})
		return
	}

	status, body, err := h.jobs.GenerateTopics(r.Context(), req.ContentOptions)
	if err != nil {
		slog.Error("Topic generation failed", "error", err)
		h.workflowError(w, models.MsgTopicsError)
		return
	}
	if status < 200 || status >= 300 {
		h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   stringOr(gjson.GetBytes(body, "error"), models.MsgTopicsBackendFail),
		})
		return
	}
	if !gjson.GetBytes(body, "success").Bool() {
		h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   stringOr(gjson.GetBytes(body, "error"), models.MsgTopicsFailed),
		})
		return
	}

	var topics []map[string]interface{}
	if raw := gjson.GetBytes(body, "topics").Raw; raw != "" {
		json.Unmarshal([]byte(raw), &topics)
	}
	if topics == nil {
		topics = []map[string]interface{}{}
	}

	h.writeJSON(w, http.StatusOK, models.TopicsResponse{
		Success: true,
		Topics:  topics,
	})
}

// GenerateContent returns the deterministic demo draft for a keyword.
// This endpoint is intentionally local: it never calls an upstream.
func (h *Handler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req models.ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.workflowError(w, models.MsgContentError)
		return
	}
	if req.KeywordData.BaseKeyword == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   models.MsgKeywordDataRequired,
		})
		return
	}

	kw := req.KeywordData.BaseKeyword
	content := models.GeneratedContent{
		Title: fmt.Sprintf("%s에 대한 완벽한 가이드", kw),
		Content: fmt.Sprintf(`
# %[1]s에 대한 완벽한 가이드

## 소개
%[1]s에 대해 알아보고 싶으신가요? 이 글에서는 %[1]s에 대한 모든 것을 다룹니다.

## 주요 내용
- %[1]s의 정의
- %[1]s의 장점
- %[1]s 활용 방법
- 실제 사례 분석

## 결론
%[1]s는 현대 비즈니스에서 필수적인 요소입니다. 이 가이드를 통해 %[1]s에 대한 이해를 높이시기 바랍니다.

더 자세한 정보가 필요하시면 언제든지 문의해주세요.
`, kw),
		Keywords: append([]string{kw}, req.KeywordData.RelatedKeywords...),
		SEOScore: 85,
	}

	h.writeJSON(w, http.StatusOK, models.ContentResponse{
		Success: true,
		Content: content,
	})
}

func (h *Handler) workflowError(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// mergeKeywords combines keyword groups in priority order, removing
// duplicates and capping the result.
func mergeKeywords(groups ...[]gjson.Result) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, maxExtractedKeywords)
	for _, group := range groups {
		for _, item := range group {
			kw := item.String()
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			merged = append(merged, kw)
			if len(merged) == maxExtractedKeywords {
				return merged
			}
		}
	}
	return merged
}

// buildTrendAnalysis flattens the backend's high/medium/low trend groups
// into the frontend schema. Absent numeric fields get the documented
// defaults: trend_score 70, search volume 1000.
func buildTrendAnalysis(keywords []string, body []byte) models.TrendAnalysis {
	groups := gjson.GetBytes(body, "results")
	var merged []gjson.Result
	for _, tier := range []string{"high_trend", "medium_trend", "low_trend"} {
		merged = append(merged, groups.Get(tier).Array()...)
	}

	trends := make([]models.KeywordTrend, 0, len(merged))
	for _, item := range merged {
		score := int(item.Get("trend_score").Int())
		if score == 0 {
			score = 70
		}
		volume := int(item.Get("search_volume.volume").Int())
		if volume == 0 {
			volume = 1000
		}

		competition := "낮음"
		if item.Get("intent.primary_intent").String() == "정보" {
			competition = "보통"
		}
		opportunity := "보통"
		if item.Get("search_volume.trend").String() == "상승" {
			opportunity = "높음"
		}

		trends = append(trends, models.KeywordTrend{
			Keyword:      item.Get("base_keyword").String(),
			TrendScore:   score,
			SearchVolume: volume,
			Competition:  competition,
			Opportunity:  opportunity,
		})
	}

	return models.TrendAnalysis{
		Keywords: keywords,
		Trends:   trends,
		Insights: []string{
			"상승 트렌드 키워드에 집중하세요.",
			"검색량과 경쟁도를 함께 고려한 우선순위를 설정하세요.",
			"관련 키워드 묶음으로 콘텐츠 클러스터를 구성하세요.",
		},
		Recommendations: []string{
			"상위 트렌드 키워드로 기획 문서부터 작성",
			"검색량 1,500+이면서 경쟁도 보통 이하 키워드 선별",
			"중복 키워드는 의도에 따라 분화하여 시리즈화",
		},
	}
}

// demoOnboardingAnalysis is the fixed analysis payload the onboarding page
// renders; keywords are the only dynamic part of the response.
func demoOnboardingAnalysis() models.OnboardingAnalysis {
	return models.OnboardingAnalysis{
		PainPoints: []string{
			"콘텐츠 제작 시간이 너무 오래 걸림",
			"SEO 최적화가 어려움",
			"일관된 브랜드 톤앤매너 유지가 어려움",
		},
		Motivations: []string{
			"효율적인 콘텐츠 제작",
			"검색 엔진 최적화",
			"브랜드 인지도 향상",
		},
		Expectations: []string{
			"자동화된 콘텐츠 생성",
			"SEO 분석 및 최적화",
			"브랜드 일관성 유지",
		},
		Feedback: []string{
			"사용자 친화적인 인터페이스",
			"실시간 분석 결과",
			"맞춤형 콘텐츠 제안",
		},
		Recommendations: []string{
			"키워드 기반 콘텐츠 생성",
			"트렌드 분석 통합",
			"자동 블로그 포스팅",
		},
		CustomerJourney: []models.JourneyStage{
			{Stage: "인지", Insights: []string{"검색을 통한 서비스 발견", "소셜미디어를 통한 브랜드 인지"}},
			{Stage: "관심", Insights: []string{"무료 데모 체험", "사용 사례 확인"}},
			{Stage: "고려", Insights: []string{"가격 비교", "기능 비교", "리뷰 확인"}},
			{Stage: "구매", Insights: []string{"플랜 선택", "결제 진행"}},
			{Stage: "사용", Insights: []string{"온보딩 완료", "정기 사용"}},
		},
		SentimentScore: 75,
	}
}
