package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rentagent/app/config"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const (
	extractTimeout  = 30 * time.Second
	sessionIDHeader = "X-Session-ID"
)

const schemaPrompt = `请从用户的租房需求中提取查询条件，只输出一个 JSON 对象，不要其他文字。
字段说明（没有的填 null）：
- district: 行政区，如 海淀、朝阳（仅北京）
- area: 商圈，如 西二旗、上地、国贸、望京
- min_price, max_price: 月租金范围（整数，单位元）
- bedrooms: 卧室数，字符串如 "1" 或 "1,2"
- rental_type: "整租" 或 "合租"
- max_subway_dist: 离地铁最大距离（米），近地铁填 800
- subway_station: 地铁站名，如 车公庄站
- commute_to_xierqi_max: 到西二旗通勤时间上限（整数，分钟）
- decoration: 装修，如 精装、简装
- orientation: 朝向，如 朝南、南北
- elevator: "true" 或 "false"
- min_area, max_area: 面积范围（整数，平米）
- community: 小区名（用户明确说查某小区时填）
- landmark_nearby: 用户说「xx附近」「xx边上」「靠近xx」时的地标名，如 西二旗站、国贸
示例：用户说「海淀 5000以内 一居 整租 近地铁」→ {"district":"海淀","max_price":5000,"bedrooms":"1","rental_type":"整租","max_subway_dist":800,"area":null,"min_price":null,"community":null,"landmark_nearby":null}
`

const multiTurnPrompt = `请根据以下多轮对话，提取用户当前的全部租房查询条件（后面的消息可能补充、修改或取消前面的需求）。
只输出一个 JSON 对象，不要其他文字。字段同单轮说明：district, area, min_price, max_price, bedrooms, rental_type, max_subway_dist, subway_station, commute_to_xierqi_max, decoration, orientation, elevator, min_area, max_area, community, landmark_nearby。没有的填 null。
`

// HistoryEntry is one prior turn serialized into the multi-turn prompt.
type HistoryEntry struct {
	Role    string
	Content string
}

// Request carries one extraction call. ModelIP, when set, selects a
// per-request completion backend instead of the configured one; SessionID
// is propagated to the backend as a correlation header.
type Request struct {
	Text      string
	History   []HistoryEntry
	ModelIP   string
	SessionID string
}

// ModelExtractor delegates condition extraction to an OpenAI-compatible
// completion backend. Any failure is reported as an error; the caller is
// expected to fall back to the rule-based path.
type ModelExtractor struct {
	cfg *config.Config
}

func NewModelExtractor(di *do.Injector) (*ModelExtractor, error) {
	return &ModelExtractor{
		cfg: do.MustInvoke[*config.Config](di),
	}, nil
}

// Available reports whether a completion backend can be reached for this
// request: either one is configured statically or the request carries a
// model_ip routing hint.
func (e *ModelExtractor) Available(modelIP string) bool {
	if strings.TrimSpace(modelIP) != "" {
		return true
	}
	return e.cfg.LLM.BaseURL != "" || e.cfg.LLM.Token != ""
}

// Extract sends a single low-temperature completion request built from the
// field schema and, for multi-turn sessions, the serialized recent history.
// The response is unwrapped from a fenced block if present, parsed as JSON
// and normalized to the canonical schema.
func (e *ModelExtractor) Extract(ctx context.Context, req Request) (Conditions, error) {
	sysPrompt := schemaPrompt
	userContent := strings.TrimSpace(req.Text)
	if userContent == "" {
		userContent = "无"
	}

	if len(req.History) > 0 {
		sysPrompt = schemaPrompt + "\n" + multiTurnPrompt

		var b strings.Builder
		for _, turn := range req.History {
			role := "助手"
			if turn.Role == RoleUser {
				role = "用户"
			}
			b.WriteString(role)
			b.WriteString("：")
			b.WriteString(turn.Content)
			b.WriteString("\n")
		}
		b.WriteString("用户：")
		b.WriteString(userContent)
		userContent = b.String()
	}

	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	aiResponse, err := e.client(req.ModelIP, req.SessionID).CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.cfg.LLM.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: sysPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userContent,
				},
			},
			Temperature: 0.1,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return nil, fmt.Errorf("no chat completion found")
	}

	content := unwrapFencedJSON(strings.TrimSpace(aiResponse.Choices[0].Message.Content))

	var raw map[string]any
	if err = json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conditions: %w", err)
	}

	return Normalize(raw), nil
}

func (e *ModelExtractor) client(modelIP, sessionID string) *openai.Client {
	token := e.cfg.LLM.Token
	if token == "" {
		token = "dummy"
	}

	clientConfig := openai.DefaultConfig(token)
	if base := e.baseURL(modelIP); base != "" {
		clientConfig.BaseURL = base
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout:   extractTimeout,
		Transport: &headerTransport{sessionID: sessionID},
	}

	return openai.NewClientWithConfig(clientConfig)
}

// baseURL resolves the backend address: a model_ip routing hint wins over
// the static configuration and is combined with the configured model
// service port and path unless it already carries a scheme.
func (e *ModelExtractor) baseURL(modelIP string) string {
	ip := strings.TrimSpace(modelIP)
	if ip == "" {
		return strings.TrimRight(e.cfg.LLM.BaseURL, "/")
	}
	if strings.Contains(ip, "://") {
		return strings.TrimRight(ip, "/")
	}
	return fmt.Sprintf("http://%s:%d%s", ip, e.cfg.LLM.ServicePort, e.cfg.LLM.ServicePath)
}

// headerTransport attaches the session correlation header to every request
// of one extraction call.
type headerTransport struct {
	sessionID string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.sessionID != "" {
		req.Header.Set(sessionIDHeader, t.sessionID)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// unwrapFencedJSON strips a markdown code fence around the model's JSON
// payload, tolerating a json language tag and surrounding prose.
func unwrapFencedJSON(content string) string {
	if !strings.Contains(content, "```") {
		return content
	}
	for _, part := range strings.Split(content, "```") {
		part = strings.TrimSpace(part)
		part = strings.TrimSpace(strings.TrimPrefix(part, "json"))
		if strings.HasPrefix(part, "{") {
			return part
		}
	}
	return content
}
