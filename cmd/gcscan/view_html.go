package main

const viewHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
    <style type="text/css">
      canvas { border: 1px solid black; }
      body { font-family: sans-serif; }
    </style>
    <script src="https://unpkg.com/zdog@1/dist/zdog.dist.js"></script>
  </head>
  <body>
    <canvas class="gcode-view" width="600" height="600"></canvas>
    <ul class="object-list"></ul>
    <script type="text/javascript">
document.title = %s

const bounds = %s

const objects = %s
    </script>
    <script type="text/javascript">
let displaySize = 600;
let colors = ['#c25', '#e62', '#ea0', '#2a6', '#19f', '#636'];

let span = Math.max(bounds.max[0] - bounds.min[0], bounds.max[1] - bounds.min[1], 1);
let center = {
  x: (bounds.min[0] + bounds.max[0]) / 2,
  y: (bounds.min[1] + bounds.max[1]) / 2,
};

let gcodeView = document.querySelector(".gcode-view")

let illo = new Zdog.Illustration({
  element: gcodeView,
  scale: {x: 1.0, y: -1.0, z: 1.0},
  zoom: displaySize / (span * 1.2),
});

gcodeView.onwheel = function(event) {
  event.preventDefault()
  illo.zoom *= (event.deltaY < 0 ? 1.1 : 1 / 1.1)
  animate()
}

let dragStartRX, dragStartRZ;
let isDragging = false;

new Zdog.Dragger({
  startElement: gcodeView,
  onDragStart: function() {
    dragStartRX = illo.rotate.x;
    dragStartRZ = illo.rotate.z;
    isDragging = true;
    animate();
  },
  onDragMove: function( pointer, moveX, moveY ) {
    illo.rotate.x = dragStartRX - ( moveY / displaySize * Zdog.TAU );
    illo.rotate.z = dragStartRZ - ( moveX / displaySize * Zdog.TAU );
  },
  onDragEnd: function () {
    isDragging = false;
  },
});

let plate = new Zdog.Anchor({
  addTo: illo,
  translate: {x: -center.x, y: -center.y, z: 0},
})

// Extents of all the objects
new Zdog.Rect({
  addTo: plate,
  width: bounds.max[0] - bounds.min[0],
  height: bounds.max[1] - bounds.min[1],
  translate: {x: center.x, y: center.y},
  stroke: span / 600,
  color: 'grey',
})

let list = document.querySelector(".object-list")

objects.forEach(function(obj, odx) {
  let color = colors[odx %% colors.length]

  new Zdog.Shape({
    addTo: plate,
    stroke: span / 300,
    color: color,
    closed: true,
    path: obj.polygon.map(function(p) { return {x: p[0], y: p[1]} }),
  })

  for (let p of obj.points) {
    new Zdog.Shape({
      addTo: plate,
      stroke: span / 200,
      color: color,
      translate: {x: p[0], y: p[1]},
    })
  }

  new Zdog.Shape({
    addTo: plate,
    stroke: span / 60,
    color: color,
    translate: {x: obj.center[0], y: obj.center[1]},
  })

  let item = document.createElement("li")
  item.style.color = color
  item.textContent = obj.name + " (" + obj.points.length + " points)"
  list.appendChild(item)
})

function animate() {
  illo.updateRenderGraph()
  if (isDragging) {
    requestAnimationFrame(animate)
  }
}
animate();
    </script>
 </body>
</html>
`
