package shader

// ─────────────────────────────── Single texture ────────────────────────────────

// Sources are written against WebGL2 (GLSL ES 3.00) and translated for the
// context they end up on.

const textureVertexSource = `#version 300 es
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
out vec2 vUV;
void main() {
    vUV = aUV;
    gl_Position = vec4(aPos, 1.0);
}
`

const textureFragmentSource = `#version 300 es
precision mediump float;
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D uTex;
void main() { fragColor = texture(uTex, vUV); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// TextureSource returns the inline program used to draw one texture on a quad.
// It samples uTex at the interpolated aUV coordinate.
func TextureSource() Source {
	return Source{Vertex: textureVertexSource, Fragment: textureFragmentSource}
}
