//go:build !js

package render

// QueueSize 每帧提交给渲染后端的最大对象数
const QueueSize = 70
