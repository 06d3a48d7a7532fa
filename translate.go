package appcat

import "context"

// Translator rewrites a description into another language.
// A translator that has nothing to offer returns the input unchanged.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// TranslationTable is a read-only exact-match lookup table. Matching is
// case-sensitive and not fuzzy; misses pass through unchanged.
type TranslationTable map[string]string

// Ensure TranslationTable implements Translator at compile time.
var _ Translator = TranslationTable(nil)

// Lookup returns the table entry for text, or text itself when absent.
func (t TranslationTable) Lookup(text string) string {
	if v, ok := t[text]; ok {
		return v
	}
	return text
}

// Translate implements Translator. It never fails.
func (t TranslationTable) Translate(_ context.Context, text string) (string, error) {
	return t.Lookup(text), nil
}

// ChainTranslator tries each translator in order and returns the first
// result that differs from the input.
type ChainTranslator []Translator

// Translate implements Translator.
func (c ChainTranslator) Translate(ctx context.Context, text string) (string, error) {
	for _, t := range c {
		out, err := t.Translate(ctx, text)
		if err != nil {
			return "", err
		}
		if out != text {
			return out, nil
		}
	}
	return text, nil
}

// DefaultTranslations returns a fresh copy of the built-in English to
// Simplified Chinese phrase table for catalog short descriptions.
func DefaultTranslations() TranslationTable {
	t := make(TranslationTable, len(defaultTranslations))
	for k, v := range defaultTranslations {
		t[k] = v
	}
	return t
}

var defaultTranslations = map[string]string{
	"Recover deleted or lost files":       "恢复已删除或丢失的文件",
	"Take better screenshots and GIFs":    "拍摄更好的截图和GIF",
	"Mind map and brainstorm ideas":       "思维导图和头脑风暴",
	"Get full-screen meeting alerts":      "获取全屏会议提醒",
	"Set battery charging limits":         "设置电池充电限制",
	"Access macOS features fast":          "快速访问macOS功能",
	"Compress PDFs without quality loss":  "无损压缩PDF文件",
	"Versatile media player":              "多功能媒体播放器",
	"Close windows from Mission Control":  "从Mission Control关闭窗口",
	"Play all video formats":              "播放所有视频格式",
	"Check Mac camera in a click":         "一键检查Mac摄像头",
	"Measure golden ratio in designs":     "测量设计中的黄金比例",
	"Track CPU, GPU, sensors, etc.":       "监控CPU、GPU、传感器等",
	"100+ dynamic wallpapers":             "100+动态壁纸",
	"Access recent and favorite files":    "访问最近和收藏的文件",
	"Check your security settings":        "检查安全设置",
	"Manage multiple DBMS":                "管理多个数据库管理系统",
	"Fix WiFi problems":                   "修复WiFi问题",
	"Try aerial screen savers":            "尝试航拍屏保",
	"Simplify two-step authentication":    "简化两步验证",
	"Manage to-do lists with timers":      "使用计时器管理待办事项",
	"Manage SSH client config files":      "管理SSH客户端配置文件",
	"Build better habits":                 "培养更好的习惯",
	"Manage large projects":               "管理大型项目",
	"Boost your typing speed":             "提升打字速度",
	"Create your perfect RSS feed":        "创建完美的RSS订阅",
	"Control SQLite databases":            "控制SQLite数据库",
	"Translate anything":                  "翻译任何内容",
	"Receive weather alerts":              "接收天气预警",
	"Reduce CPU usage":                    "降低CPU使用率",
	"Two-pane file manager":               "双窗格文件管理器",
	"Sync and back up folders":            "同步和备份文件夹",
	"Remind yourself to take a break":     "提醒自己休息",
	"Edit and manage icon designs":        "编辑和管理图标设计",
	"Prepare icons and app assets":        "准备图标和应用资源",
	"Generate mockups for all devices":    "为所有设备生成模型",
	"Full-featured SSH terminal":          "全功能SSH终端",
	"Play lofi music in a click":          "一键播放lofi音乐",
	"Self-publish books or booklets":      "自助出版书籍或小册子",
	"Create visual outlines":              "创建可视化大纲",
	"Curate your movie collection":        "管理电影收藏",
	"Copy, delete, and sync files":        "复制、删除和同步文件",
	"Monitor your Wi-Fi connection":       "监控Wi-Fi连接",
	"Find anything in a PDF with AI":      "使用AI在PDF中查找任何内容",
	"Boost volume and audio quality":      "提升音量和音频质量",
	"Block websites and apps":             "屏蔽网站和应用",
	"Record video with teleprompter":      "使用提词器录制视频",
	"Improve your photos like a pro":      "像专业人士一样改善照片",
	"Personalize WhatsApp":                "个性化WhatsApp",
	"Edit photos and videos":              "编辑照片和视频",
	"Work with your PDFs":                 "处理PDF文件",
	"Manage emails easier":                "更轻松地管理邮件",
	"Work across time zones":              "跨时区工作",
	"Expand your Mac's right click":       "扩展Mac的右键功能",
	"Chat with your PDFs":                 "与PDF对话",
	"Track your Mac connections":          "跟踪Mac连接",
	"Work with timers":                    "使用计时器工作",
	"Read/write to NTFS drives":           "读写NTFS驱动器",
	"Back up only essential files":        "仅备份重要文件",
	"Edit and track invoices":             "编辑和跟踪发票",
	"Write and manage emails":             "编写和管理邮件",
	"Save time typing with text snippets": "使用文本片段节省打字时间",
	"Smart Meeting Notes with AI":         "AI智能会议记录",
	"Share files and boost your brand":    "共享文件并提升品牌",
	"Budget and manage bills":             "预算和管理账单",
	"Access app actions in a click":       "一键访问应用操作",
	"Control Mac from your phone":         "从手机控制Mac",
	"Move files between macOS and iOS":    "在macOS和iOS之间移动文件",
	"Store and manage passwords":          "存储和管理密码",
	"Rename screenshots with AI":          "使用AI重命名截图",
	"Turn websites into apps":             "将网站转换为应用",
	"Easily edit videos like a pro":       "像专业人士一样轻松编辑视频",
	"Reflect on your life":                "反思人生",
	"Tabs from all browsers in one spot":  "在一个地方查看所有浏览器标签",
	"Record and edit music on Mac":        "在Mac上录制和编辑音乐",
	"Customize your home screen":          "自定义主屏幕",
	"Listen to your texts":                "聆听文本内容",
	"Manage email subscriptions":          "管理邮件订阅",
	"Generate draft email replies":        "生成邮件回复草稿",
}
