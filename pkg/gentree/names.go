package gentree

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soundprediction/kinship/pkg/types"
)

// DefaultNames is the built-in display-name pool. When a tree needs more
// names than the pool holds, the shuffled pool repeats cyclically, so
// duplicate names become possible on oversized requests.
var DefaultNames = []string{
	"Qingfeng", "Anning", "Mengyao", "Zihui", "Ziyu", "Zihan",
	"Wenli", "Anbang", "Zichen", "Limin", "Yawen", "Zitao",
	"Zixian", "Fuqiang", "Hemu", "Ziqi", "Yonglu", "Xingye",
	"Mingzhu", "Siyuan", "Ziqian", "Changle", "Yongan", "Mingda",
	"Yajing", "Wenjie", "Ailing", "Wenjing", "Siqi", "Bolin",
	"Zirui", "Xinglong", "Xinghua", "Zimo", "Mingxian", "Wuxiong",
	"Ziyang", "Sihan", "Jingyi", "Meihui", "Ziyue", "Changfu",
	"Xingsheng", "Heping", "Wenxiu", "Anmin", "Dekang", "Zixuan",
	"Heguang", "Anguo", "Zihao", "Changqing", "Wenya", "Xiuying",
	"Zilin", "Bosen", "Ruixue", "Heyue", "Mingzheng", "Yulan",
	"Mingzhi", "Yongfang", "Zilan", "Mingyue", "Mengjie", "Ankang",
	"Heshun", "Lihua", "Jianguo", "Sixian", "Xingbang", "Tianlang",
	"Huimin", "Yongfu", "Xiaoqing", "Xingchen", "Yali", "Tianyou",
	"Jiaxin", "Ruolan", "Shuhua", "Yunfei", "Zhenhua", "Qiuyue",
	"Baozhu", "Chunmei", "Dongmei", "Guangming", "Haiyan", "Jingwen",
}

// LoadPool reads a custom name pool from a YAML file shaped as a plain
// list of strings.
func LoadPool(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read name pool: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse name pool: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("name pool %s is empty", path)
	}
	return names, nil
}

// assignNames maps tree positions to display names in creation order,
// attaches spouses from leftover names, shuffles child order, and emits
// the serialized tree.
//
// Draw order is fixed: pool shuffle, then one spouse draw per individual
// in creation order, then one child-order shuffle per individual.
func assignNames(at *attempt, pool []string, rng *rand.Rand) *types.Person {
	available := make([]string, len(pool))
	copy(available, pool)
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	// Repeat the shuffled pool cyclically when demand exceeds supply.
	n := len(at.order)
	if len(available) < n {
		base := available
		times := n/len(base) + 1
		available = make([]string, 0, len(base)*(times+1))
		for i := 0; i <= times; i++ {
			available = append(available, base...)
		}
	}

	for i, nd := range at.order {
		nd.name = available[i]
	}

	// Spouses come from the leftover names. Individuals with children are
	// likelier to be married, which keeps rendered trees looking like
	// family units rather than scattered singles.
	remaining := available[n:]
	for _, nd := range at.order {
		if len(remaining) == 0 {
			break
		}
		prob := 0.2
		if len(nd.children) > 0 {
			prob = 0.7
		}
		if rng.Float64() < prob {
			nd.spouse = remaining[len(remaining)-1]
			remaining = remaining[:len(remaining)-1]
		}
	}

	// Hide construction order: without this the main branch is always the
	// first child everywhere.
	for _, nd := range at.order {
		if len(nd.children) > 1 {
			rng.Shuffle(len(nd.children), func(i, j int) {
				nd.children[i], nd.children[j] = nd.children[j], nd.children[i]
			})
		}
	}

	return serialize(at.root)
}

// serialize converts the construction tree into the handoff format with
// an explicit stack.
func serialize(root *node) *types.Person {
	out := &types.Person{Name: root.name, Spouse: root.spouse}
	type frame struct {
		src *node
		dst *types.Person
	}
	stack := []frame{{root, out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range f.src.children {
			p := &types.Person{Name: c.name, Spouse: c.spouse}
			f.dst.Children = append(f.dst.Children, p)
			stack = append(stack, frame{c, p})
		}
	}
	return out
}
