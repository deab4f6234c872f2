package adfilter

// DefaultKeywords is the stock ad-keyword set, a mix of english and chinese
// phrases collected from observed group-chat spam. Deployments normally
// override it via configuration and hot-swap it with Detector.ReloadKeywords.
var DefaultKeywords = []string{
	"buy now", "discount", "limited offer", "click here",
	"make money", "earn cash now", "investment", "free gift",
	"提奔驰", "开宝马", "看竹叶", "看我筑夜", "煮叶进",
	"下个月让你", "两个月后直接", "安排到位", "稳定长久",
	"安全无忧", "多个社区多个机会", "随意交流", "靠普能干事的兄弟",
	"说到做到", "给你安排到位", "不妨来看看",
	"加微信", "加V", "加薇", "加我", "私聊",
	"赚钱项目", "高回报", "稳赚不赔", "兼职",
	"内部渠道", "特殊资源", "独家代理",
}
