//go:build js

package render

// QueueSize 每帧提交给渲染后端的最大对象数（浏览器端预算更小）
const QueueSize = 20
