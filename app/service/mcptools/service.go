package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"rentagent/app/client/rentalapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// Service exposes the listing API as an MCP toolset over stdio, so external
// agent runtimes can drive the same queries the dialog loop runs.
type Service struct {
	api *rentalapi.Client
	mcp *server.MCPServer
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		api: do.MustInvoke[*rentalapi.Client](di),
	}

	s.mcp = server.NewMCPServer("rental-agent", "1.0.0",
		server.WithToolCapabilities(false),
	)
	s.registerTools()

	return s, nil
}

// Run serves the toolset on stdin/stdout until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	slog.Info("MCP toolset listening on stdio")

	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Service) registerTools() {
	s.mcp.AddTool(mcp.NewTool("search_houses",
		mcp.WithDescription("搜索房源。指定 community 按小区查询；指定 landmark 按地标附近查询；否则按多条件筛选。"),
		mcp.WithString("community", mcp.Description("小区名")),
		mcp.WithString("landmark", mcp.Description("地标名或地标 ID，如 西二旗站、LM_001")),
		mcp.WithNumber("max_distance", mcp.Description("地标附近最大距离（米），默认 2000")),
		mcp.WithString("district", mcp.Description("行政区，如 海淀")),
		mcp.WithString("area", mcp.Description("商圈，如 西二旗")),
		mcp.WithNumber("min_price", mcp.Description("最低月租金（元）")),
		mcp.WithNumber("max_price", mcp.Description("最高月租金（元）")),
		mcp.WithString("bedrooms", mcp.Description("卧室数，如 \"1\" 或 \"1,2\"")),
		mcp.WithString("rental_type", mcp.Description("整租 或 合租")),
		mcp.WithString("decoration", mcp.Description("装修，如 精装")),
		mcp.WithString("orientation", mcp.Description("朝向，如 朝南")),
		mcp.WithString("elevator", mcp.Description("true 或 false")),
		mcp.WithNumber("min_area", mcp.Description("最小面积（平米）")),
		mcp.WithNumber("max_area", mcp.Description("最大面积（平米）")),
		mcp.WithString("property_type", mcp.Description("物业类型")),
		mcp.WithString("subway_line", mcp.Description("地铁线路")),
		mcp.WithNumber("max_subway_dist", mcp.Description("离地铁最大距离（米）")),
		mcp.WithString("subway_station", mcp.Description("地铁站名")),
		mcp.WithString("utilities_type", mcp.Description("水电类型")),
		mcp.WithString("available_from_before", mcp.Description("最晚起租日期")),
		mcp.WithNumber("commute_to_xierqi_max", mcp.Description("到西二旗通勤时间上限（分钟）")),
		mcp.WithString("sort_by", mcp.Description("排序字段")),
		mcp.WithString("sort_order", mcp.Description("asc 或 desc")),
		mcp.WithString("listing_platform", mcp.Description("挂牌平台：链家、安居客、58同城")),
		mcp.WithNumber("page", mcp.Description("页码")),
		mcp.WithNumber("page_size", mcp.Description("每页条数")),
	), s.handleSearchHouses)

	s.mcp.AddTool(mcp.NewTool("house_detail",
		mcp.WithDescription("查询单套房源详情及其挂牌信息。"),
		mcp.WithString("house_id", mcp.Required(), mcp.Description("房源 ID，如 HF_001")),
		mcp.WithBoolean("listings", mcp.Description("true 时返回挂牌信息而非房源详情")),
	), s.handleHouseDetail)

	s.mcp.AddTool(mcp.NewTool("house_action",
		mcp.WithDescription("对房源执行租房、退租或下架操作。"),
		mcp.WithString("action", mcp.Required(),
			mcp.Description("操作类型"),
			mcp.Enum("rent", "terminate", "offline"),
		),
		mcp.WithString("house_id", mcp.Required(), mcp.Description("房源 ID")),
		mcp.WithString("listing_platform", mcp.Description("挂牌平台，默认 安居客")),
	), s.handleHouseAction)

	s.mcp.AddTool(mcp.NewTool("landmarks",
		mcp.WithDescription("地标查询：列表、按名称、模糊搜索、按 ID、统计。"),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("查询方式"),
			mcp.Enum("list", "by_name", "search", "by_id", "stats"),
		),
		mcp.WithString("name", mcp.Description("by_name 的地标名")),
		mcp.WithString("q", mcp.Description("search 的关键词")),
		mcp.WithString("id", mcp.Description("by_id 的地标 ID")),
	), s.handleLandmarks)

	s.mcp.AddTool(mcp.NewTool("init_houses",
		mcp.WithDescription("重置房源数据集。"),
	), s.handleInitHouses)
}

func (s *Service) handleSearchHouses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := rentalapi.ListOptions{
		ListingPlatform: req.GetString("listing_platform", ""),
		Page:            req.GetInt("page", 0),
		PageSize:        req.GetInt("page_size", 0),
	}

	if community := req.GetString("community", ""); community != "" {
		return toolResult(s.api.HousesByCommunity(ctx, community, opts))
	}

	if landmark := req.GetString("landmark", ""); landmark != "" {
		id, ok := s.landmarkIDFor(ctx, landmark)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("未找到地标：%s", landmark)), nil
		}
		maxDistance := req.GetInt("max_distance", 2000)
		return toolResult(s.api.HousesNearby(ctx, id, maxDistance, opts))
	}

	filter := rentalapi.PlatformFilter{
		ListingPlatform:     opts.ListingPlatform,
		District:            req.GetString("district", ""),
		Area:                req.GetString("area", ""),
		MinPrice:            req.GetInt("min_price", 0),
		MaxPrice:            req.GetInt("max_price", 0),
		Bedrooms:            req.GetString("bedrooms", ""),
		RentalType:          req.GetString("rental_type", ""),
		Decoration:          req.GetString("decoration", ""),
		Orientation:         req.GetString("orientation", ""),
		Elevator:            req.GetString("elevator", ""),
		MinArea:             req.GetInt("min_area", 0),
		MaxArea:             req.GetInt("max_area", 0),
		PropertyType:        req.GetString("property_type", ""),
		SubwayLine:          req.GetString("subway_line", ""),
		MaxSubwayDist:       req.GetInt("max_subway_dist", 0),
		SubwayStation:       req.GetString("subway_station", ""),
		UtilitiesType:       req.GetString("utilities_type", ""),
		AvailableFromBefore: req.GetString("available_from_before", ""),
		CommuteToXierqiMax:  req.GetInt("commute_to_xierqi_max", 0),
		SortBy:              req.GetString("sort_by", ""),
		SortOrder:           req.GetString("sort_order", ""),
		Page:                opts.Page,
		PageSize:            opts.PageSize,
	}

	return toolResult(s.api.HousesByPlatform(ctx, filter))
}

// landmarkIDFor resolves a landmark reference that may already be an id, an
// exact name, or a partial name.
func (s *Service) landmarkIDFor(ctx context.Context, ref string) (string, bool) {
	res, err := s.api.LandmarkByName(ctx, ref)
	if err == nil && res.ErrorMessage() == "" {
		if id, ok := res.ID(); ok {
			return id, true
		}
	}

	res, err = s.api.SearchLandmarks(ctx, ref)
	if err == nil && res.ErrorMessage() == "" {
		if id, ok := res.ID(); ok {
			return id, true
		}
	}

	return "", false
}

func (s *Service) handleHouseDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	houseID, err := req.RequireString("house_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if req.GetBool("listings", false) {
		return toolResult(s.api.HouseListings(ctx, houseID))
	}
	return toolResult(s.api.HouseByID(ctx, houseID))
}

func (s *Service) handleHouseAction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	houseID, err := req.RequireString("house_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	platform := req.GetString("listing_platform", rentalapi.PlatformAnjuke)

	switch action {
	case "rent":
		return toolResult(s.api.Rent(ctx, houseID, platform))
	case "terminate":
		return toolResult(s.api.Terminate(ctx, houseID, platform))
	case "offline":
		return toolResult(s.api.Offline(ctx, houseID, platform))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action: %s", action)), nil
	}
}

func (s *Service) handleLandmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	operation, err := req.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch operation {
	case "list":
		return toolResult(s.api.Landmarks(ctx, rentalapi.ListOptions{}))
	case "by_name":
		return toolResult(s.api.LandmarkByName(ctx, req.GetString("name", "")))
	case "search":
		return toolResult(s.api.SearchLandmarks(ctx, req.GetString("q", "")))
	case "by_id":
		return toolResult(s.api.LandmarkByID(ctx, req.GetString("id", "")))
	case "stats":
		return toolResult(s.api.LandmarkStats(ctx))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown operation: %s", operation)), nil
	}
}

func (s *Service) handleInitHouses(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.api.InitHouses(ctx))
}

func toolResult(res rentalapi.Result, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if msg := res.ErrorMessage(); msg != "" {
		return mcp.NewToolResultError(msg), nil
	}

	out, err := res.JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
