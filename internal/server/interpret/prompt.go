package interpret

import (
	"encoding/json"
	"fmt"

	"github.com/ansapra/ansapra/internal/server/models"
)

// BuildPrompt assembles the user prompt for one interpretation request: the
// reader's habit settings, the titles of their most recent uploads, their
// knowledge-profile questionnaire, and the stored filename of the paper.
func BuildPrompt(habits models.ReadingHabits, recentTitles []string, profile json.RawMessage, filename string) string {
	habitsJSON, _ := json.Marshal(habits)

	if recentTitles == nil {
		recentTitles = []string{}
	}
	titlesJSON, _ := json.Marshal(recentTitles)

	if len(profile) == 0 {
		profile = json.RawMessage("{}")
	}

	return fmt.Sprintf(`
用户是一位高中生，需要解读一篇自然科学学术论文。
其具体个性化解读方式设置数据：%s
过往阅读数据：%s
个人自然科学知识框架问卷：%s
本次解读的论文文件：%s
请根据用户输入的论文，生成一篇符合所有个性化需求的解读内容。
为了帮助完善用户的知识框架，可以在解读时注重用户知识框架的薄弱点，并发挥用户在自然科学方面的长处。
解读时，句子不能冗长，要求简短、清晰；尽可能逻辑清晰地分出小标题，有条理地分开解读内容的各部分；
尽可能在解读时，遵循论文本身的分段逻辑。只进行论文内容的解读，不需要额外生成其他内容。
生成的解读内容需要是中文。在解读的最后请附上这篇论文的术语解读区。
`, habitsJSON, titlesJSON, profile, filename)
}
