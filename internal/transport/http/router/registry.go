package router

import (
	"sort"

	"padel-ranking-api/internal/transport/http/ez"
)

// Module 业务模块在公共分组与鉴权分组上挂载自己的接口
type Module interface {
	Mount(public, authed ez.EZ)
}

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 按优先级收集模块，由 NewAPIEngine 统一挂载
type Registry struct {
	mods []Module
}

func (r *Registry) Register(mods ...Module) {
	r.mods = append(r.mods, mods...)
}

// MountAll 挂载所有已注册的模块
func (r *Registry) MountAll(public, authed ez.EZ) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(public, authed)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
