package query

import (
	"fmt"

	"watchlog/internal/index"
)

// Mode names one entry of the analysis catalog. Every mode is thin
// configuration over the same filter / aggregate / tie-break engine.
type Mode string

const (
	ModeFirstVideos         Mode = "first-videos"
	ModeFirstVideosPerYear  Mode = "first-videos-per-year"
	ModeChannelFirstVideos  Mode = "channel-first-videos"
	ModeTopVideos           Mode = "top-videos"
	ModeTopVideosPerYear    Mode = "top-videos-per-year"
	ModeTopChannels         Mode = "top-channels"
	ModeTopChannelsPerYear  Mode = "top-channels-per-year"
	ModeTopDays             Mode = "top-days"
	ModeTopDaysPerYear      Mode = "top-days-per-year"
	ModeVideosByYear        Mode = "videos-by-year"
	ModeVideosByMonth       Mode = "videos-by-month"
	ModeVideosByHour        Mode = "videos-by-hour"
	ModeVideosByWeekday     Mode = "videos-by-weekday"
	ModeVideosOnDate        Mode = "videos-on-date"
	ModeSearchTitles        Mode = "search-titles"
	ModeFirstAds            Mode = "first-ads"
	ModeTopAdDays           Mode = "top-ad-days"
	ModeAdsByYear           Mode = "ads-by-year"
	ModeAdsByMonth          Mode = "ads-by-month"
	ModeAdsByHour           Mode = "ads-by-hour"
	ModeAdsByWeekday        Mode = "ads-by-weekday"
	ModeAdsOnDate           Mode = "ads-on-date"
	ModeActivityByYear      Mode = "activity-by-year"
	ModeActivityByMonth     Mode = "activity-by-month"
	ModeActivityByHour      Mode = "activity-by-hour"
	ModeActivityByWeekday   Mode = "activity-by-weekday"
	ModeSummary             Mode = "summary"
)

type aggKind int

const (
	aggFirstN aggKind = iota
	aggTopCount
	aggCountByKey
	aggOnDate
	aggSearch
	aggSummary
)

type modeSpec struct {
	mode Mode
	desc string

	filter  index.KindFilter
	agg     aggKind
	gran    index.Granularity
	perYear bool

	needsChannel bool
	needsDate    bool
	needsKeyword bool
}

// catalog is the full analysis catalog. Order here is the order the
// CLI lists modes in.
var catalog = []modeSpec{
	{mode: ModeFirstVideos, desc: "First videos watched", filter: index.VideosOnly, agg: aggFirstN},
	{mode: ModeFirstVideosPerYear, desc: "First videos watched in each year", filter: index.VideosOnly, agg: aggFirstN, perYear: true},
	{mode: ModeChannelFirstVideos, desc: "First videos watched from a channel", filter: index.VideosOnly, agg: aggFirstN, needsChannel: true},
	{mode: ModeTopVideos, desc: "Most watched videos", filter: index.VideosOnly, agg: aggTopCount, gran: index.Title},
	{mode: ModeTopVideosPerYear, desc: "Most watched videos per year", filter: index.VideosOnly, agg: aggTopCount, gran: index.Title, perYear: true},
	{mode: ModeTopChannels, desc: "Most watched channels", filter: index.VideosOnly, agg: aggTopCount, gran: index.Channel},
	{mode: ModeTopChannelsPerYear, desc: "Most watched channels per year", filter: index.VideosOnly, agg: aggTopCount, gran: index.Channel, perYear: true},
	{mode: ModeTopDays, desc: "Days with most videos watched", filter: index.VideosOnly, agg: aggTopCount, gran: index.Day},
	{mode: ModeTopDaysPerYear, desc: "Days with most videos watched per year", filter: index.VideosOnly, agg: aggTopCount, gran: index.Day, perYear: true},
	{mode: ModeVideosByYear, desc: "Videos watched per year", filter: index.VideosOnly, agg: aggCountByKey, gran: index.Year},
	{mode: ModeVideosByMonth, desc: "Videos watched per month", filter: index.VideosOnly, agg: aggCountByKey, gran: index.Month},
	{mode: ModeVideosByHour, desc: "Videos watched by hour of day", filter: index.VideosOnly, agg: aggCountByKey, gran: index.Hour},
	{mode: ModeVideosByWeekday, desc: "Videos watched by weekday", filter: index.VideosOnly, agg: aggCountByKey, gran: index.Weekday},
	{mode: ModeVideosOnDate, desc: "Videos watched on a given date", filter: index.VideosOnly, agg: aggOnDate, needsDate: true},
	{mode: ModeSearchTitles, desc: "Search video titles by keyword", filter: index.VideosOnly, agg: aggSearch, needsKeyword: true},
	{mode: ModeFirstAds, desc: "First advertisements seen", filter: index.AdsOnly, agg: aggFirstN},
	{mode: ModeTopAdDays, desc: "Days with most advertisements", filter: index.AdsOnly, agg: aggTopCount, gran: index.Day},
	{mode: ModeAdsByYear, desc: "Advertisements per year", filter: index.AdsOnly, agg: aggCountByKey, gran: index.Year},
	{mode: ModeAdsByMonth, desc: "Advertisements per month", filter: index.AdsOnly, agg: aggCountByKey, gran: index.Month},
	{mode: ModeAdsByHour, desc: "Advertisements by hour of day", filter: index.AdsOnly, agg: aggCountByKey, gran: index.Hour},
	{mode: ModeAdsByWeekday, desc: "Advertisements by weekday", filter: index.AdsOnly, agg: aggCountByKey, gran: index.Weekday},
	{mode: ModeAdsOnDate, desc: "Advertisements seen on a given date", filter: index.AdsOnly, agg: aggOnDate, needsDate: true},
	{mode: ModeActivityByYear, desc: "All activity per year (videos and ads)", filter: index.All, agg: aggCountByKey, gran: index.Year},
	{mode: ModeActivityByMonth, desc: "All activity per month (videos and ads)", filter: index.All, agg: aggCountByKey, gran: index.Month},
	{mode: ModeActivityByHour, desc: "All activity by hour of day (videos and ads)", filter: index.All, agg: aggCountByKey, gran: index.Hour},
	{mode: ModeActivityByWeekday, desc: "All activity by weekday (videos and ads)", filter: index.All, agg: aggCountByKey, gran: index.Weekday},
	{mode: ModeSummary, desc: "Totals split by kind, time span, dropped fragments", filter: index.All, agg: aggSummary},
}

// ModeInfo describes one catalog entry for listing purposes.
type ModeInfo struct {
	Mode        Mode
	Description string
}

// Modes returns the full catalog in its canonical order.
func Modes() []ModeInfo {
	infos := make([]ModeInfo, len(catalog))
	for i, spec := range catalog {
		infos[i] = ModeInfo{Mode: spec.mode, Description: spec.desc}
	}
	return infos
}

// ParseMode resolves a mode name from the catalog.
func ParseMode(s string) (Mode, error) {
	for _, spec := range catalog {
		if string(spec.mode) == s {
			return spec.mode, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, s)
}

func lookup(mode Mode) (modeSpec, bool) {
	for _, spec := range catalog {
		if spec.mode == mode {
			return spec, true
		}
	}
	return modeSpec{}, false
}
